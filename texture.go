package pxedit

import "log/slog"

// Texture is an opaque handle owned by a TextureRenderer.
type Texture any

// TextureRenderer mirrors pixel buffers on the GPU.
//
// The engine calls BufferTexture when a buffer first needs a texture or
// changes size, UpdateTexture when its contents change at the same size,
// and DestroyTexture exactly once per texture it buffered. data holds
// width*height straight RGBA pixels, 4 bytes each.
type TextureRenderer interface {
	BufferTexture(data []byte, width, height int) (Texture, error)
	UpdateTexture(tex Texture, data []byte, width, height int) error
	DestroyTexture(tex Texture)
}

// nopRenderer is the default renderer. It hands out nil textures so the
// pool can still account for every buffer.
type nopRenderer struct{}

func (nopRenderer) BufferTexture([]byte, int, int) (Texture, error) { return nil, nil }
func (nopRenderer) UpdateTexture(Texture, []byte, int, int) error   { return nil }
func (nopRenderer) DestroyTexture(Texture)                          {}

// textureOwner distinguishes batch textures from layer composite textures.
type textureOwner uint8

const (
	ownerBatch textureOwner = iota
	ownerLayer
)

func (o textureOwner) String() string {
	if o == ownerLayer {
		return "layer"
	}
	return "batch"
}

// textureKey identifies a pooled texture.
type textureKey struct {
	owner textureOwner
	id    uint64
}

// textureSlot is a live texture and the size it was buffered at.
type textureSlot struct {
	tex    Texture
	width  int
	height int
}

// texturePool tracks every texture the engine has buffered, keyed by
// owner, so each one is destroyed exactly once.
//
// texturePool is not safe for concurrent use.
type texturePool struct {
	renderer TextureRenderer
	live     map[textureKey]*textureSlot
}

func newTexturePool(r TextureRenderer) *texturePool {
	if r == nil {
		r = nopRenderer{}
	}
	return &texturePool{renderer: r, live: make(map[textureKey]*textureSlot)}
}

// refresh makes the texture for key mirror buf. A zero-area buffer has no
// texture.
func (p *texturePool) refresh(key textureKey, buf *pixelBuffer) error {
	w, h := buf.bounds.W, buf.bounds.H
	slot, ok := p.live[key]
	if w == 0 || h == 0 {
		if ok {
			p.release(key)
		}
		return nil
	}
	if ok && slot.width == w && slot.height == h {
		return p.renderer.UpdateTexture(slot.tex, buf.data, w, h)
	}
	if ok {
		p.release(key)
	}
	tex, err := p.renderer.BufferTexture(buf.data, w, h)
	if err != nil {
		return err
	}
	p.live[key] = &textureSlot{tex: tex, width: w, height: h}
	Logger().Debug("pxedit: texture buffered",
		slog.String("owner", key.owner.String()), slog.Uint64("id", key.id),
		slog.Int("width", w), slog.Int("height", h))
	return nil
}

// refreshLive is like refresh but only touches a key that already has a
// texture.
func (p *texturePool) refreshLive(key textureKey, buf *pixelBuffer) error {
	if _, ok := p.live[key]; !ok {
		return nil
	}
	return p.refresh(key, buf)
}

// texture returns the live texture for key, or nil.
func (p *texturePool) texture(key textureKey) Texture {
	if slot, ok := p.live[key]; ok {
		return slot.tex
	}
	return nil
}

// release destroys the texture for key. Reports whether a texture was live.
func (p *texturePool) release(key textureKey) bool {
	slot, ok := p.live[key]
	if !ok {
		return false
	}
	delete(p.live, key)
	p.renderer.DestroyTexture(slot.tex)
	Logger().Debug("pxedit: texture destroyed",
		slog.String("owner", key.owner.String()), slog.Uint64("id", key.id))
	return true
}

// releaseAll destroys every live texture.
func (p *texturePool) releaseAll() {
	for key := range p.live {
		p.release(key)
	}
}

// size returns the number of live textures.
func (p *texturePool) size() int {
	return len(p.live)
}
