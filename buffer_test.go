package pxedit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPixelBufferResizeByOffset(t *testing.T) {
	tests := []struct {
		name  string
		start Boundings
		x, y  int
		jump  int
		want  Boundings
	}{
		{"empty grows right/down", Boundings{}, 2, 2, 64, Boundings{0, 0, 67, 67}},
		{"empty grows left/up", Boundings{}, -1, -1, 64, Boundings{-65, -65, 65, 65}},
		{"unit jump", Boundings{}, 0, 0, 1, Boundings{0, 0, 2, 2}},
		{"only x grows", Boundings{0, 0, 4, 4}, 4, 1, 2, Boundings{0, 0, 7, 4}},
		{"left keeps right edge", Boundings{0, 0, 4, 4}, -2, 0, 3, Boundings{-5, 0, 9, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPixelBuffer(tt.start, true)
			if !p.resizeByOffset(tt.x, tt.y, tt.jump) {
				t.Fatal("resizeByOffset reported no change")
			}
			if p.bounds != tt.want {
				t.Errorf("bounds = %v, want %v", p.bounds, tt.want)
			}
			if !p.bounds.IsPointInside(tt.x, tt.y) {
				t.Error("point should be inside after growth")
			}
			if len(p.data) != 4*tt.want.W*tt.want.H || len(p.reverse) != len(p.data) {
				t.Errorf("buffer sizes = %d/%d", len(p.data), len(p.reverse))
			}
		})
	}
}

func TestPixelBufferResizeIsIdempotent(t *testing.T) {
	p := newPixelBuffer(Boundings{}, false)
	p.resizeByOffset(5, -3, 8)
	first := p.bounds
	if p.resizeByOffset(5, -3, 8) {
		t.Error("second resize for the same point should be a no-op")
	}
	if p.bounds != first {
		t.Errorf("bounds changed: %v -> %v", first, p.bounds)
	}
}

func TestPixelBufferReshapePreservesContent(t *testing.T) {
	p := newPixelBuffer(NewBoundings(0, 0, 2, 2), true)
	copy(p.pixel(1, 1), []byte{9, 8, 7, 255})
	copy(p.reversePixel(1, 1), []byte{1, 1, 1, 26})

	p.resizeByOffset(-1, -1, 1)

	if diff := cmp.Diff([]byte{9, 8, 7, 255}, p.pixel(1, 1)); diff != "" {
		t.Errorf("data moved (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{1, 1, 1, 26}, p.reversePixel(1, 1)); diff != "" {
		t.Errorf("reverse moved (-want +got):\n%s", diff)
	}
	if p.pixel(-2, -2)[3] != 0 {
		t.Error("new area should be transparent")
	}
}

func TestPixelBufferTightening(t *testing.T) {
	p := newPixelBuffer(NewBoundings(0, 0, 10, 10), true)
	copy(p.pixel(2, 2), []byte{1, 2, 3, 255})
	copy(p.pixel(5, 5), []byte{1, 2, 3, 255})

	if !p.resizeByMatrixData() {
		t.Fatal("expected crop")
	}
	if want := NewBoundings(2, 2, 4, 4); p.bounds != want {
		t.Errorf("bounds = %v, want %v", p.bounds, want)
	}
	if p.resizeByMatrixData() {
		t.Error("already tight buffer should not be cropped again")
	}
	if p.pixel(5, 5)[0] != 1 {
		t.Error("content lost during crop")
	}
}

func TestPixelBufferTighteningEmpty(t *testing.T) {
	p := newPixelBuffer(NewBoundings(0, 0, 3, 3), false)
	if p.resizeByMatrixData() {
		t.Error("empty buffer should be left alone")
	}
	if !p.isEmpty() {
		t.Error("zeroed buffer should be empty")
	}
	if p.bounds != NewBoundings(0, 0, 3, 3) {
		t.Errorf("bounds = %v", p.bounds)
	}
}

func TestPixelBufferOutside(t *testing.T) {
	p := newPixelBuffer(NewBoundings(0, 0, 1, 1), false)
	if p.pixel(1, 0) != nil || p.pixel(-1, 0) != nil {
		t.Error("pixel outside bounds should be nil")
	}
	if p.reversePixel(0, 0) != nil {
		t.Error("buffer without reverse should return nil reverse pixels")
	}
}

func TestPixelBufferClone(t *testing.T) {
	p := newPixelBuffer(NewBoundings(0, 0, 1, 1), true)
	copy(p.pixel(0, 0), []byte{1, 2, 3, 4})
	c := p.clone()
	p.pixel(0, 0)[0] = 99
	if c.pixel(0, 0)[0] != 1 {
		t.Error("clone shares data with original")
	}
}
