package pxedit

// DefaultJumpSize is the default growth step, in pixels, used when a batch
// must grow to include a new point.
const DefaultJumpSize = 64

// pixelBuffer is a growable RGBA byte grid anchored at bounds.
// data holds 4*W*H bytes. reverse, when present, has the same shape and
// records for each touched pixel the value that existed before the first
// write of the owning batch.
type pixelBuffer struct {
	bounds  Boundings
	data    []byte
	reverse []byte
}

// newPixelBuffer allocates a zeroed buffer covering b.
func newPixelBuffer(b Boundings, withReverse bool) *pixelBuffer {
	p := &pixelBuffer{bounds: b, data: make([]byte, 4*b.W*b.H)}
	if withReverse {
		p.reverse = make([]byte, 4*b.W*b.H)
	}
	return p
}

// offset returns the byte index of (x, y). The point must be inside bounds.
func (p *pixelBuffer) offset(x, y int) int {
	return ((y-p.bounds.Y)*p.bounds.W + (x - p.bounds.X)) * 4
}

// pixel returns the 4-byte slot at (x, y), or nil outside bounds.
func (p *pixelBuffer) pixel(x, y int) []byte {
	if !p.bounds.IsPointInside(x, y) {
		return nil
	}
	i := p.offset(x, y)
	return p.data[i : i+4 : i+4]
}

// reversePixel returns the 4-byte reverse slot at (x, y), or nil.
func (p *pixelBuffer) reversePixel(x, y int) []byte {
	if p.reverse == nil || !p.bounds.IsPointInside(x, y) {
		return nil
	}
	i := p.offset(x, y)
	return p.reverse[i : i+4 : i+4]
}

// resizeByOffset grows bounds so that (x, y) becomes paintable.
// Each insufficient side is extended past the point by jump pixels.
// Reports whether the buffer was reallocated.
func (p *pixelBuffer) resizeByOffset(x, y, jump int) bool {
	b := p.bounds
	if b.IsPointInside(x, y) {
		return false
	}
	nx, nw := b.X, b.W
	if x < b.X {
		nx = x - jump
		nw = b.X + b.W - nx
	} else if x > b.X+b.W-1 {
		nw = x - b.X + 1 + jump
	}
	ny, nh := b.Y, b.H
	if y < b.Y {
		ny = y - jump
		nh = b.Y + b.H - ny
	} else if y > b.Y+b.H-1 {
		nh = y - b.Y + 1 + jump
	}
	p.reshape(Boundings{X: nx, Y: ny, W: nw, H: nh})
	return true
}

// reshape reallocates the buffer to nb and copies the overlapping
// region of both grids into its translated position.
func (p *pixelBuffer) reshape(nb Boundings) {
	data := make([]byte, 4*nb.W*nb.H)
	var reverse []byte
	if p.reverse != nil {
		reverse = make([]byte, 4*nb.W*nb.H)
	}
	overlap := p.bounds.Intersect(nb)
	if !overlap.IsEmpty() {
		rowLen := overlap.W * 4
		for y := overlap.Y; y < overlap.Y+overlap.H; y++ {
			src := p.offset(overlap.X, y)
			dst := ((y-nb.Y)*nb.W + (overlap.X - nb.X)) * 4
			copy(data[dst:dst+rowLen], p.data[src:src+rowLen])
			if reverse != nil {
				copy(reverse[dst:dst+rowLen], p.reverse[src:src+rowLen])
			}
		}
	}
	p.bounds = nb
	p.data = data
	p.reverse = reverse
}

// tightBounds returns the smallest rectangle holding every pixel with a
// non-zero alpha byte, or the zero value if there is none.
func (p *pixelBuffer) tightBounds() Boundings {
	b := p.bounds
	minX, minY := b.X+b.W, b.Y+b.H
	maxX, maxY := b.X-1, b.Y-1
	for j := 0; j < b.H; j++ {
		row := j * b.W * 4
		for i := 0; i < b.W; i++ {
			if p.data[row+i*4+3] == 0 {
				continue
			}
			x, y := b.X+i, b.Y+j
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return Boundings{}
	}
	return Boundings{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
}

// resizeByMatrixData crops the buffer to its non-transparent pixels.
// It is a no-op for empty or already tight buffers. Reports whether the
// buffer was reallocated.
func (p *pixelBuffer) resizeByMatrixData() bool {
	tight := p.tightBounds()
	if tight.IsEmpty() || tight == p.bounds {
		return false
	}
	p.reshape(tight)
	return true
}

// isEmpty reports whether every pixel has a zero alpha byte.
func (p *pixelBuffer) isEmpty() bool {
	for i := 3; i < len(p.data); i += 4 {
		if p.data[i] != 0 {
			return false
		}
	}
	return true
}

// clone returns a deep copy.
func (p *pixelBuffer) clone() *pixelBuffer {
	c := &pixelBuffer{bounds: p.bounds.Clone(), data: append([]byte(nil), p.data...)}
	if p.reverse != nil {
		c.reverse = append([]byte(nil), p.reverse...)
	}
	return c
}
