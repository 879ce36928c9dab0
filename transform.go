package pxedit

// tileMatrix is an integer affine transform of tile coordinates, laid out
// like a 2x3 row-major matrix:
//
//	| a  b  c |
//	| d  e  f |
//
// It maps (x, y) to (a*x + b*y + c, d*x + e*y + f). Only flips, quarter
// turns, translations and their products are built, so the linear part
// always has entries in {-1, 0, 1} and a determinant of ±1.
type tileMatrix struct {
	a, b, c int
	d, e, f int
}

func identityTiles() tileMatrix {
	return tileMatrix{a: 1, e: 1}
}

// flipTiles mirrors tiles across the vertical (horizontal) center line of
// bounds, so bounds maps onto itself.
func flipTiles(bounds Boundings, axis FlipAxis) tileMatrix {
	if axis == FlipVertical {
		return tileMatrix{a: 1, e: -1, f: 2*bounds.Y + bounds.H - 1}
	}
	return tileMatrix{a: -1, c: 2*bounds.X + bounds.W - 1, e: 1}
}

// rotateTiles turns tiles a quarter clockwise. The result covers H x W
// tiles and keeps the top-left corner of bounds.
func rotateTiles(bounds Boundings) tileMatrix {
	return tileMatrix{
		a: 0, b: -1, c: bounds.X + bounds.Y + bounds.H - 1,
		d: 1, e: 0, f: bounds.Y - bounds.X,
	}
}

// Multiply returns m * o: the transform applying o first, then m.
func (m tileMatrix) Multiply(o tileMatrix) tileMatrix {
	return tileMatrix{
		a: m.a*o.a + m.b*o.d,
		b: m.a*o.b + m.b*o.e,
		c: m.a*o.c + m.b*o.f + m.c,
		d: m.d*o.a + m.e*o.d,
		e: m.d*o.b + m.e*o.e,
		f: m.d*o.c + m.e*o.f + m.f,
	}
}

// Invert returns the inverse transform. Exact because det is ±1.
func (m tileMatrix) Invert() tileMatrix {
	det := m.a*m.e - m.b*m.d
	inv := tileMatrix{
		a: m.e * det, b: -m.b * det,
		d: -m.d * det, e: m.a * det,
	}
	inv.c = -(inv.a*m.c + inv.b*m.f)
	inv.f = -(inv.d*m.c + inv.e*m.f)
	return inv
}

// Apply maps the tile (x, y).
func (m tileMatrix) Apply(x, y int) (int, int) {
	return m.a*x + m.b*y + m.c, m.d*x + m.e*y + m.f
}

// Bounds maps a rectangle of tiles. An empty rectangle keeps its size and
// only has its anchor mapped.
func (m tileMatrix) Bounds(b Boundings) Boundings {
	x0, y0 := m.Apply(b.X, b.Y)
	if b.IsEmpty() {
		return Boundings{X: x0, Y: y0, W: b.W, H: b.H}
	}
	x1, y1 := m.Apply(b.X+b.W-1, b.Y+b.H-1)
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)
	return Boundings{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1}
}

// transform moves every tile of the buffer, and of its reverse plane, to
// its mapped position.
func (p *pixelBuffer) transform(m tileMatrix) {
	b := p.bounds
	np := newPixelBuffer(m.Bounds(b), p.reverse != nil)
	for y := b.Y; y < b.Y+b.H; y++ {
		for x := b.X; x < b.X+b.W; x++ {
			nx, ny := m.Apply(x, y)
			i, j := p.offset(x, y), np.offset(nx, ny)
			copy(np.data[j:j+4], p.data[i:i+4])
			if p.reverse != nil {
				copy(np.reverse[j:j+4], p.reverse[i:i+4])
			}
		}
	}
	*p = *np
}

// transform maps the layer's working area, composite and batches through m.
// Batches move with the composite so their reverse planes stay aligned.
func (l *Layer) transform(m tileMatrix) {
	l.area = m.Bounds(l.area)
	l.composite.transform(m)
	for _, b := range l.batches {
		b.buf.transform(m)
	}
}
