// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/pxedit"
)

// Common errors returned by Renderer operations.
var (
	// ErrNilCreator is returned when a nil TextureCreator is passed.
	ErrNilCreator = errors.New("gpucanvas: nil TextureCreator")

	// ErrInvalidDimensions is returned when the pixel data does not match
	// the requested texture size.
	ErrInvalidDimensions = errors.New("gpucanvas: invalid dimensions")

	// ErrNotUpdatable is returned when a texture cannot be rewritten in place.
	ErrNotUpdatable = errors.New("gpucanvas: texture does not support UpdateData")

	// ErrInvalidTexture is returned when a texture cannot be drawn.
	ErrInvalidTexture = errors.New("gpucanvas: texture must implement gpucontext.Texture")
)

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// createFunc creates a texture from straight RGBA bytes.
type createFunc func(width, height int, data []byte) (any, error)

// Renderer implements pxedit.TextureRenderer on top of a
// gpucontext.TextureCreator.
type Renderer struct {
	create createFunc
}

// Compile-time check.
var _ pxedit.TextureRenderer = (*Renderer)(nil)

// New creates a Renderer. The creator usually comes from
// gogpu.Context.AsTextureDrawer().TextureCreator().
func New(creator gpucontext.TextureCreator) (*Renderer, error) {
	if creator == nil {
		return nil, ErrNilCreator
	}
	return newRenderer(func(width, height int, data []byte) (any, error) {
		return creator.NewTextureFromRGBA(width, height, data)
	}), nil
}

func newRenderer(create createFunc) *Renderer {
	return &Renderer{create: create}
}

// Format returns the pixel format of every texture the renderer creates.
// Editor buffers hold straight (non-premultiplied) RGBA bytes.
func (r *Renderer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// BufferTexture implements pxedit.TextureRenderer.
func (r *Renderer) BufferTexture(data []byte, width, height int) (pxedit.Texture, error) {
	if err := checkSize(data, width, height); err != nil {
		return nil, err
	}
	tex, err := r.create(width, height, data)
	if err != nil {
		return nil, fmt.Errorf("gpucanvas: NewTextureFromRGBA failed: %w", err)
	}
	pxedit.Logger().Debug("gpucanvas: texture created",
		slog.Int("width", width), slog.Int("height", height))
	// Editor pixels are straight alpha.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(false)
	}
	return tex, nil
}

// UpdateTexture implements pxedit.TextureRenderer.
func (r *Renderer) UpdateTexture(tex pxedit.Texture, data []byte, width, height int) error {
	if err := checkSize(data, width, height); err != nil {
		return err
	}
	updater, ok := tex.(gpucontext.TextureUpdater)
	if !ok {
		return ErrNotUpdatable
	}
	if err := updater.UpdateData(data); err != nil {
		return fmt.Errorf("gpucanvas: texture update failed: %w", err)
	}
	return nil
}

// DestroyTexture implements pxedit.TextureRenderer.
func (r *Renderer) DestroyTexture(tex pxedit.Texture) {
	d, ok := tex.(textureDestroyer)
	if !ok {
		pxedit.Logger().Warn("gpucanvas: texture cannot be destroyed",
			slog.String("type", fmt.Sprintf("%T", tex)))
		return
	}
	d.Destroy()
}

func checkSize(data []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(data) != width*height*4 {
		return fmt.Errorf("%w: width=%d, height=%d, len=%d", ErrInvalidDimensions, width, height, len(data))
	}
	return nil
}
