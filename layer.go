package pxedit

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/pxedit/internal/blend"
)

// LayerID identifies a layer. IDs are never reused, so a stale ID fails
// lookup instead of aliasing a newer layer.
type LayerID uint64

// Layer is an ordered list of batches plus one composite buffer holding
// the layer's pixels up to the current command-stack cursor.
//
// The composite always covers exactly the layer's boundings: the union of
// its working area and every applied batch.
type Layer struct {
	id      LayerID
	name    string
	visible bool
	locked  bool

	area      Boundings
	batches   []*Batch
	composite *pixelBuffer
	textures  *texturePool
}

func newLayer(id LayerID, name string, area Boundings, textures *texturePool) *Layer {
	return &Layer{
		id:        id,
		name:      name,
		visible:   true,
		area:      area,
		composite: newPixelBuffer(area, false),
		textures:  textures,
	}
}

// ID returns the layer's ID.
func (l *Layer) ID() LayerID { return l.id }

// Name returns the layer's name.
func (l *Layer) Name() string { return l.name }

// Visible reports whether the layer takes part in rendering and export.
func (l *Layer) Visible() bool { return l.visible }

// Locked reports whether the layer rejects new edits.
func (l *Layer) Locked() bool { return l.locked }

// Area returns the layer's minimum working area.
func (l *Layer) Area() Boundings { return l.area }

// Bounds returns a copy of the layer's boundings.
func (l *Layer) Bounds() Boundings { return l.composite.bounds.Clone() }

// Batches returns the layer's batches, oldest first.
func (l *Layer) Batches() []*Batch {
	return append([]*Batch(nil), l.batches...)
}

// PixelAt returns the composite pixel at (x, y), or Transparent outside
// the layer's boundings.
func (l *Layer) PixelAt(x, y int) Color {
	if p := l.composite.pixel(x, y); p != nil {
		return colorFromBytes(p)
	}
	return Transparent
}

// Pixels returns the composite's raw RGBA bytes and their boundings.
// The slice is owned by the layer and must not be modified.
func (l *Layer) Pixels() ([]byte, Boundings) {
	return l.composite.data, l.composite.bounds
}

// Texture returns the composite's GPU texture, or nil if none is buffered.
func (l *Layer) Texture() Texture {
	return l.textures.texture(l.textureKey())
}

// updateBoundings recomputes the layer boundings from its working area and
// applied batches, reallocating the composite when they change.
func (l *Layer) updateBoundings() {
	nb := l.area
	for _, b := range l.batches {
		if b.applied {
			nb = nb.Union(b.buf.bounds)
		}
	}
	if nb == l.composite.bounds {
		return
	}
	Logger().Debug("pxedit: layer reshaped",
		slog.Uint64("layer", uint64(l.id)),
		slog.String("from", l.composite.bounds.String()),
		slog.String("to", nb.String()))
	l.composite.reshape(nb)
}

// injectMatrix merges a batch's forward pixels (forward) or its reverse
// pixels (undo) into the composite at their translated position.
func (l *Layer) injectMatrix(b *Batch, forward bool) {
	src := b.buf
	r := src.bounds.Intersect(l.composite.bounds)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			i := src.offset(x, y)
			dst := l.composite.pixel(x, y)
			written := src.data[i+3] != 0
			var px []byte
			if forward {
				px = src.data[i : i+4]
			} else {
				px = src.reverse[i : i+4]
			}
			blend.Merge(dst, px, forward, b.eraser, written)
		}
	}
}

// refresh uploads the composite to its GPU texture.
func (l *Layer) refresh() error {
	if err := l.textures.refresh(l.textureKey(), l.composite); err != nil {
		return fmt.Errorf("pxedit: refresh layer %d: %w", l.id, err)
	}
	return nil
}

// removeBatch drops b from the batch list. Reports whether it was present.
func (l *Layer) removeBatch(b *Batch) bool {
	for i, c := range l.batches {
		if c == b {
			l.batches = append(l.batches[:i], l.batches[i+1:]...)
			return true
		}
	}
	return false
}

// translate shifts the working area, the composite and every batch.
func (l *Layer) translate(dx, dy int) {
	l.area = l.area.Translate(dx, dy)
	l.composite.bounds = l.composite.bounds.Translate(dx, dy)
	for _, b := range l.batches {
		b.buf.bounds = b.buf.bounds.Translate(dx, dy)
	}
}

func (l *Layer) textureKey() textureKey {
	return textureKey{owner: ownerLayer, id: uint64(l.id)}
}
