package pxedit

import (
	"fmt"
	"image"
)

// Boundings is an integer axis-aligned rectangle.
// W and H are never negative. A point (x, y) is inside when
// X <= x <= X+W-1 and Y <= y <= Y+H-1.
//
// Boundings has value semantics; copy or Clone it before diverging mutations.
type Boundings struct {
	X, Y, W, H int
}

// NewBoundings creates normalized boundings.
func NewBoundings(x, y, w, h int) Boundings {
	var b Boundings
	b.Update(x, y, w, h)
	return b
}

// Update replaces all four fields, coercing them to 32-bit integers
// and clamping negative sizes to zero.
func (b *Boundings) Update(x, y, w, h int) {
	b.X = int(int32(x))
	b.Y = int(int32(y))
	b.W = max(int(int32(w)), 0)
	b.H = max(int(int32(h)), 0)
}

// UpdateByBoundings copies all fields from o.
func (b *Boundings) UpdateByBoundings(o Boundings) {
	b.Update(o.X, o.Y, o.W, o.H)
}

// Clone returns an independent copy.
func (b Boundings) Clone() Boundings {
	return b
}

// IsPointInside reports whether (x, y) lies within the rectangle.
func (b Boundings) IsPointInside(x, y int) bool {
	return x >= b.X && x <= b.X+b.W-1 && y >= b.Y && y <= b.Y+b.H-1
}

// IsEmpty reports whether the rectangle covers no pixels.
func (b Boundings) IsEmpty() bool {
	return b.W == 0 || b.H == 0
}

// Union returns the smallest rectangle containing both b and o.
// Empty rectangles do not contribute.
func (b Boundings) Union(o Boundings) Boundings {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	x0, y0 := min(b.X, o.X), min(b.Y, o.Y)
	x1, y1 := max(b.X+b.W, o.X+o.W), max(b.Y+b.H, o.Y+o.H)
	return Boundings{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersect returns the overlap of b and o, or the zero value if they are disjoint.
func (b Boundings) Intersect(o Boundings) Boundings {
	x0, y0 := max(b.X, o.X), max(b.Y, o.Y)
	x1, y1 := min(b.X+b.W, o.X+o.W), min(b.Y+b.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Boundings{}
	}
	return Boundings{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns the rectangle shifted by (dx, dy).
func (b Boundings) Translate(dx, dy int) Boundings {
	return Boundings{X: b.X + dx, Y: b.Y + dy, W: b.W, H: b.H}
}

// Rect converts the boundings to an image.Rectangle.
func (b Boundings) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// String formats the boundings as {x,y,w,h}.
func (b Boundings) String() string {
	return fmt.Sprintf("{%d,%d,%d,%d}", b.X, b.Y, b.W, b.H)
}
