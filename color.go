package pxedit

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/pxedit/internal/blend"
)

// AlphaScale is the fixed quantization step between the logical alpha
// (0.0 to 1.0 in steps of 0.1) and the stored alpha byte.
const AlphaScale = blend.Scale

// Color is a straight (non-premultiplied) RGBA color.
// R, G and B are bytes; A is the logical alpha in [0, 1] at one-decimal
// precision. The stored byte form is produced by AlphaToByte.
type Color struct {
	R, G, B uint8
	A       float64
}

// Transparent is the empty color. Pixels with a zero alpha byte are empty.
var Transparent = Color{}

// NewColor creates a color, rounding alpha to one decimal.
// Returns ErrInvalidAlpha if a is outside [0, 1] or NaN.
func NewColor(r, g, b uint8, a float64) (Color, error) {
	c := Color{R: r, G: g, B: b, A: a}
	if err := c.validate(); err != nil {
		return Color{}, err
	}
	c.A = math.Round(a*10) / 10
	return c, nil
}

// validate reports ErrInvalidAlpha if c.A is outside [0, 1] or NaN.
// Colors built as struct literals bypass NewColor, so write paths check here.
func (c Color) validate() error {
	if math.IsNaN(c.A) || c.A < 0 || c.A > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidAlpha, c.A)
	}
	return nil
}

// MustColor is like NewColor but panics on error.
// Use only with constant inputs.
func MustColor(r, g, b uint8, a float64) Color {
	c, err := NewColor(r, g, b, a)
	if err != nil {
		panic(err)
	}
	return c
}

// AlphaToByte converts a logical alpha to its stored byte.
func AlphaToByte(a float64) uint8 { return blend.AlphaToByte(a) }

// ByteToAlpha converts a stored alpha byte back to the one-decimal logical alpha.
func ByteToAlpha(b uint8) float64 { return blend.ByteToAlpha(b) }

// IsEmpty reports whether the color is fully transparent once stored.
func (c Color) IsEmpty() bool {
	return AlphaToByte(c.A) == 0
}

// Equal reports whether two colors have the same stored form.
func (c Color) Equal(o Color) bool {
	return c.bytes() == o.bytes()
}

// NRGBA converts the color to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: AlphaToByte(c.A)}
}

// String formats the color as [r,g,b,a].
func (c Color) String() string {
	return fmt.Sprintf("[%d,%d,%d,%g]", c.R, c.G, c.B, c.A)
}

// FromColor converts a standard color.Color, quantizing alpha to one decimal.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: ByteToAlpha(n.A)}
}

// bytes returns the stored RGBA form.
func (c Color) bytes() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, AlphaToByte(c.A)}
}

// colorFromBytes reads a color from a 4-byte RGBA slot.
func colorFromBytes(p []byte) Color {
	return Color{R: p[0], G: p[1], B: p[2], A: ByteToAlpha(p[3])}
}
