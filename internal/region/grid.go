// Package region traces connected regions of a layer for the fill and
// shape-select tools.
//
// A Grid holds one byte per cell of a rectangular tracing area. Cells start
// at Empty, are marked Candidate when they match the color being traced,
// and become Filled once Flood confirms they are connected to the seed.
package region

import "image"

// Cell states.
const (
	Empty     uint8 = 0
	Candidate uint8 = 1
	Filled    uint8 = 2
)

// Grid is a w x h tracing grid.
type Grid struct {
	width  int
	height int
	data   []uint8
}

// NewGrid creates a grid with every cell Empty.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// At returns the cell at (x, y). Returns Empty outside the grid.
func (g *Grid) At(x, y int) uint8 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return Empty
	}
	return g.data[y*g.width+x]
}

// Set sets the cell at (x, y). Coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, v uint8) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.data[y*g.width+x] = v
}

// Mark sets every cell for which match reports true to Candidate.
func (g *Grid) Mark(match func(x, y int) bool) {
	for y := 0; y < g.height; y++ {
		row := y * g.width
		for x := 0; x < g.width; x++ {
			if match(x, y) {
				g.data[row+x] = Candidate
			}
		}
	}
}

// Flood promotes the 4-connected Candidate cells reachable from (x, y) to
// Filled and returns how many were promoted. A seed that is not a
// Candidate promotes nothing.
func (g *Grid) Flood(x, y int) int {
	if g.At(x, y) != Candidate {
		return 0
	}

	stack := []image.Point{{X: x, Y: y}}
	g.Set(x, y, Filled)
	n := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for _, d := range [4]image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			q := p.Add(d)
			if g.At(q.X, q.Y) == Candidate {
				g.Set(q.X, q.Y, Filled)
				stack = append(stack, q)
			}
		}
	}
	return n
}

// Count returns the number of cells holding v.
func (g *Grid) Count(v uint8) int {
	n := 0
	for _, c := range g.data {
		if c == v {
			n++
		}
	}
	return n
}

// Bounds returns the tightest rectangle holding every cell equal to v,
// in grid coordinates. It is empty when no cell holds v.
func (g *Grid) Bounds(v uint8) image.Rectangle {
	r := image.Rectangle{}
	for y := 0; y < g.height; y++ {
		row := y * g.width
		for x := 0; x < g.width; x++ {
			if g.data[row+x] != v {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, data: make([]uint8, len(g.data))}
	copy(c.data, g.data)
	return c
}
