// Package blend implements the pixel merge rules used when a batch is
// composited into, or reverted out of, a layer's composite buffer.
//
// Alpha is stored as a byte but is logically a one-decimal value in [0, 1].
// The conversions below are the single source of that quantization; any
// change to them breaks the emptiness checks (alpha byte == 0) that the
// undo machinery relies on.
package blend

import "math"

// Scale is the quantization step between logical alpha and the alpha byte.
const Scale = 1.0 / 255

// AlphaToByte converts a logical alpha to its stored byte, rounding half up
// and clamping to [0, 255].
func AlphaToByte(a float64) uint8 {
	v := math.Round(a / Scale)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ByteToAlpha converts a stored byte to the one-decimal logical alpha.
func ByteToAlpha(b uint8) float64 {
	return math.Round(float64(b)*Scale*10) / 10
}

// clampChannel rounds and clamps a float channel value to a byte.
func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
