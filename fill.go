package pxedit

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/pxedit/internal/region"
)

// Region is a set of layer coordinates produced by shape selection.
type Region struct {
	bounds Boundings
	grid   *region.Grid
	origin image.Point
	n      int
}

// Bounds returns the tightest boundings holding every selected coordinate.
func (r *Region) Bounds() Boundings { return r.bounds }

// Len returns the number of selected coordinates.
func (r *Region) Len() int { return r.n }

// Contains reports whether (x, y) is selected.
func (r *Region) Contains(x, y int) bool {
	if r.grid == nil {
		return false
	}
	return r.grid.At(x-r.origin.X, y-r.origin.Y) == region.Filled
}

// FillBucket paints the 4-connected region of same-colored pixels around
// (x, y) with c, recorded as a KindFill command.
//
// The traced area is the layer's current boundings; filling never reaches
// beyond it. A seed outside the boundings, or already holding c, is a no-op.
func (ed *Editor) FillBucket(id LayerID, x, y int, c Color) error {
	return ed.fill(KindFill, id, x, y, c)
}

// ReplaceColor paints every pixel in the layer's boundings that matches
// the color at (x, y) with c, connected or not, recorded as a
// KindFloodFill command.
func (ed *Editor) ReplaceColor(id LayerID, x, y int, c Color) error {
	return ed.fill(KindFloodFill, id, x, y, c)
}

// SelectShape returns the 4-connected same-color region around (x, y).
// A seed outside the layer's boundings yields an empty region.
func (ed *Editor) SelectShape(id LayerID, x, y int) (*Region, error) {
	l := ed.Layer(id)
	if l == nil {
		return nil, fmt.Errorf("%w: %d", ErrLayerNotFound, id)
	}
	g, origin, ok := l.trace(x, y)
	if !ok {
		return &Region{}, nil
	}
	n := g.Flood(x-origin.X, y-origin.Y)
	return &Region{
		bounds: boundingsOf(g.Bounds(region.Filled), origin),
		grid:   g,
		origin: origin,
		n:      n,
	}, nil
}

func (ed *Editor) fill(kind Kind, id LayerID, x, y int, c Color) error {
	if err := c.validate(); err != nil {
		return err
	}
	if ed.IsInActiveState() {
		return ErrGestureActive
	}
	l, err := ed.editableLayer(id)
	if err != nil {
		return err
	}
	seed := l.composite.pixel(x, y)
	if seed == nil {
		return nil
	}
	target := c.bytes()
	if [4]byte(seed) == target {
		return nil
	}

	g, origin, _ := l.trace(x, y)
	want := region.Filled
	if kind == KindFloodFill {
		want = region.Candidate
	} else {
		g.Flood(x-origin.X, y-origin.Y)
	}

	bounds := boundingsOf(g.Bounds(want), origin)
	b := ed.newBatch(l, newPixelBuffer(bounds, true))
	for j := bounds.Y; j < bounds.Y+bounds.H; j++ {
		for i := bounds.X; i < bounds.X+bounds.W; i++ {
			if g.At(i-origin.X, j-origin.Y) == want {
				b.DrawPixelFast(i, j, c)
			}
		}
	}
	if b.IsEmpty() {
		Logger().Debug("pxedit: fill painted nothing", slog.Uint64("layer", uint64(id)))
		return b.Kill()
	}
	return ed.Enqueue(kind, b)
}

// trace builds a tracing grid over the layer's boundings with every pixel
// matching the color at (x, y) marked as a candidate. ok is false when the
// seed lies outside the boundings.
func (l *Layer) trace(x, y int) (g *region.Grid, origin image.Point, ok bool) {
	buf := l.composite
	seed := buf.pixel(x, y)
	if seed == nil {
		return nil, image.Point{}, false
	}
	base := [4]byte(seed)
	b := buf.bounds
	g = region.NewGrid(b.W, b.H)
	g.Mark(func(i, j int) bool {
		p := buf.data[(j*b.W+i)*4:]
		if base[3] == 0 {
			return p[3] == 0
		}
		return [4]byte(p[:4]) == base
	})
	return g, image.Pt(b.X, b.Y), true
}

func boundingsOf(r image.Rectangle, origin image.Point) Boundings {
	r = r.Add(origin)
	return Boundings{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}
