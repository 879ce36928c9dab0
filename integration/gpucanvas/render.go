// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pxedit"
)

// RenderTo draws every visible layer of ed, bottom first, to dc. (x, y) is
// the window position of canvas coordinate (0, 0).
//
// Layers whose texture has not been buffered yet are skipped. The editor
// must have been created with a Renderer for textures to exist.
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    gpucanvas.RenderTo(dc.AsTextureDrawer(), ed, 0, 0)
//	})
func RenderTo(dc gpucontext.TextureDrawer, ed *pxedit.Editor, x, y float32) error {
	for _, l := range ed.Layers() {
		if !l.Visible() {
			continue
		}
		if err := drawTexture(dc, l.Texture(), l.Bounds(), x, y); err != nil {
			return fmt.Errorf("gpucanvas: layer %d: %w", l.ID(), err)
		}
	}
	return nil
}

// RenderBatch draws an in-progress batch, such as a stroke being drawn or
// a mover preview, on top of its layer. Call b.Refresh first so its
// texture mirrors the latest pixels.
func RenderBatch(dc gpucontext.TextureDrawer, b *pxedit.Batch, x, y float32) error {
	if err := drawTexture(dc, b.Texture(), b.Bounds(), x, y); err != nil {
		return fmt.Errorf("gpucanvas: batch %d: %w", b.ID(), err)
	}
	return nil
}

func drawTexture(dc gpucontext.TextureDrawer, tex pxedit.Texture, b pxedit.Boundings, x, y float32) error {
	if tex == nil {
		return nil
	}
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, x+float32(b.X), y+float32(b.Y))
}
