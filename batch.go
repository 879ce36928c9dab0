package pxedit

import (
	"fmt"
	"log/slog"
)

// Batch is one undoable pixel edit.
//
// A batch is created by an Editor for a layer, written to by exactly one
// tool gesture, finalized, and then enqueued. Every pixel write records the
// color the owning layer held at that coordinate before the batch touched
// it, which is what makes undo exact.
//
// Batch holds the ID of its layer rather than the layer itself. It is not
// safe for concurrent use.
type Batch struct {
	id    uint64
	layer LayerID
	ed    *Editor
	buf   *pixelBuffer

	eraser bool
	mover  bool

	queued  bool
	applied bool
	killed  bool
}

// ID returns the batch's unique, monotonically assigned ID.
func (b *Batch) ID() uint64 { return b.id }

// Layer returns the ID of the owning layer.
func (b *Batch) Layer() LayerID { return b.layer }

// Bounds returns a copy of the batch's boundings.
func (b *Batch) Bounds() Boundings { return b.buf.bounds.Clone() }

// IsEraser reports whether the batch hard-erases the pixels it marks.
func (b *Batch) IsEraser() bool { return b.eraser }

// IsMover reports whether the batch is a detached move preview.
func (b *Batch) IsMover() bool { return b.mover }

// IsApplied reports whether the batch is currently merged into its layer.
func (b *Batch) IsApplied() bool { return b.applied }

// IsKilled reports whether the batch has been destroyed.
func (b *Batch) IsKilled() bool { return b.killed }

// IsEmpty reports whether the batch holds no non-transparent pixel.
func (b *Batch) IsEmpty() bool { return b.buf.isEmpty() }

// Data returns the batch's raw RGBA bytes and their boundings.
// The slice is owned by the batch and must not be modified.
func (b *Batch) Data() ([]byte, Boundings) { return b.buf.data, b.buf.bounds }

// Texture returns the batch's GPU texture, or nil if none has been buffered.
func (b *Batch) Texture() Texture {
	return b.ed.textures.texture(b.textureKey())
}

// PixelAt returns the batch's pixel at (x, y), or Transparent outside its boundings.
func (b *Batch) PixelAt(x, y int) Color {
	if p := b.buf.pixel(x, y); p != nil {
		return colorFromBytes(p)
	}
	return Transparent
}

// ReversePixelAt returns the color captured before the batch's first write
// at (x, y), or Transparent if the coordinate is untouched.
func (b *Batch) ReversePixelAt(x, y int) Color {
	if p := b.buf.reversePixel(x, y); p != nil {
		return colorFromBytes(p)
	}
	return Transparent
}

// ResizeByOffset grows the batch so (x, y) becomes paintable.
func (b *Batch) ResizeByOffset(x, y int) error {
	if err := b.writable(x, y); err != nil {
		return err
	}
	if b.buf.resizeByOffset(x, y, b.ed.cfg.jump) {
		Logger().Debug("pxedit: batch grown",
			slog.Uint64("batch", b.id), slog.String("bounds", b.buf.bounds.String()))
	}
	return nil
}

// ResizeByMatrixData crops the batch to the smallest rectangle holding its
// non-transparent pixels. Reports whether the boundings changed.
func (b *Batch) ResizeByMatrixData() bool {
	if !b.buf.resizeByMatrixData() {
		return false
	}
	Logger().Debug("pxedit: batch cropped",
		slog.Uint64("batch", b.id), slog.String("bounds", b.buf.bounds.String()))
	return true
}

// DrawAt writes c at (x, y), growing the batch first if needed.
// Returns ErrInvalidAlpha if c's alpha is outside [0, 1].
func (b *Batch) DrawAt(x, y int, c Color) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := b.ResizeByOffset(x, y); err != nil {
		return err
	}
	b.DrawPixelFast(x, y, c)
	return nil
}

// DrawPixelFast writes c at (x, y) without resizing. The point must already
// lie within the batch's boundings and c must be valid; neither is checked.
func (b *Batch) DrawPixelFast(x, y int, c Color) {
	b.capture(x, y)
	px := c.bytes()
	copy(b.buf.pixel(x, y), px[:])
}

// EraseAt erases (x, y).
//
// In an eraser batch this marks the pixel for hard erasure, growing the
// batch if needed; coordinates where the layer holds nothing are skipped.
// In any other batch it clears a pixel written earlier by this batch.
func (b *Batch) EraseAt(x, y int) error {
	if err := b.writable(x, y); err != nil {
		return err
	}
	if !b.eraser {
		if b.buf.bounds.IsPointInside(x, y) {
			b.ErasePixelFast(x, y, Transparent)
		}
		return nil
	}
	hint := b.layerPixel(x, y)
	if hint[3] == 0 {
		return nil
	}
	if err := b.ResizeByOffset(x, y); err != nil {
		return err
	}
	b.ErasePixelFast(x, y, colorFromBytes(hint[:]))
	return nil
}

// ErasePixelFast erases (x, y) without resizing. hint is the color being
// erased; eraser batches store it as their mark, other batches ignore it.
func (b *Batch) ErasePixelFast(x, y int, hint Color) {
	b.capture(x, y)
	dst := b.buf.pixel(x, y)
	if !b.eraser {
		clear(dst)
		return
	}
	px := hint.bytes()
	if px[3] == 0 {
		// The mark must be non-transparent to take effect.
		px[3] = 255
	}
	copy(dst, px[:])
}

// FillRect writes c over the w x h rectangle at (x, y).
// Returns ErrInvalidAlpha if c's alpha is outside [0, 1].
func (b *Batch) FillRect(x, y, w, h int, c Color) error {
	if err := c.validate(); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	if err := b.ResizeByOffset(x, y); err != nil {
		return err
	}
	if err := b.ResizeByOffset(x+w-1, y+h-1); err != nil {
		return err
	}
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			b.DrawPixelFast(i, j, c)
		}
	}
	return nil
}

// ClearRect erases the w x h rectangle at (x, y).
func (b *Batch) ClearRect(x, y, w, h int) error {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if err := b.EraseAt(i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// Refresh uploads the batch's pixels to its GPU texture.
func (b *Batch) Refresh() error {
	if b.killed {
		return ErrBatchDead
	}
	if err := b.ed.textures.refresh(b.textureKey(), b.buf); err != nil {
		return fmt.Errorf("pxedit: refresh batch %d: %w", b.id, err)
	}
	return nil
}

// Finalize tightens the batch to its content and refreshes its texture.
// Tools call it once the gesture ends, before Enqueue.
func (b *Batch) Finalize() error {
	if b.killed {
		return ErrBatchDead
	}
	b.ResizeByMatrixData()
	return b.Refresh()
}

// Kill destroys an unqueued batch: it leaves its layer's batch list and
// its texture is released. Killing a mover batch, which never joins a
// layer, is tolerated.
//
// A batch that has been enqueued belongs to the command stack, which kills
// it when redo truncation discards its command; Kill returns ErrBatchQueued.
func (b *Batch) Kill() error {
	if b.queued && !b.killed {
		return fmt.Errorf("%w: %d", ErrBatchQueued, b.id)
	}
	return b.ed.killBatch(b)
}

// Clone returns an unapplied copy of the batch registered with the same layer.
func (b *Batch) Clone() (*Batch, error) {
	if b.killed {
		return nil, ErrBatchDead
	}
	l := b.ed.arena[b.layer]
	if l == nil {
		return nil, fmt.Errorf("%w: %d", ErrLayerNotFound, b.layer)
	}
	c := b.ed.newBatch(l, b.buf.clone())
	c.eraser = b.eraser
	return c, nil
}

// writable validates a write to (x, y).
func (b *Batch) writable(x, y int) error {
	if b.killed {
		return ErrBatchDead
	}
	return b.ed.checkCoordinate(x, y)
}

// capture records the layer's pre-write pixel at (x, y) on first touch.
func (b *Batch) capture(x, y int) {
	rev := b.buf.reversePixel(x, y)
	if rev == nil || rev[3] != 0 {
		return
	}
	px := b.layerPixel(x, y)
	copy(rev, px[:])
}

// layerPixel returns the owning layer's composite pixel at (x, y).
func (b *Batch) layerPixel(x, y int) [4]byte {
	var px [4]byte
	if l := b.ed.arena[b.layer]; l != nil {
		if p := l.composite.pixel(x, y); p != nil {
			copy(px[:], p)
		}
	}
	return px
}

func (b *Batch) textureKey() textureKey {
	return textureKey{owner: ownerBatch, id: b.id}
}
