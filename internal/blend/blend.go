package blend

// Additive composites src onto dst in place with the light-addition rule:
//
//	a = 1 - (1-a_dst)(1-a_src)
//	c = (dst*a_dst + src*a_src*(1-a_dst)) / a
//
// Alphas are read through ByteToAlpha, so overlapping strokes of the same
// color saturate in one-decimal steps. Both slices must hold 4 bytes.
func Additive(dst, src []byte) {
	ad := ByteToAlpha(dst[3])
	as := ByteToAlpha(src[3])
	a := 1 - (1-ad)*(1-as)
	if a <= 0 {
		copy(dst, src)
		return
	}
	for i := 0; i < 3; i++ {
		d := float64(dst[i])
		s := float64(src[i])
		dst[i] = clampChannel((d*ad + s*as*(1-ad)) / a)
	}
	dst[3] = AlphaToByte(a)
}

// Merge applies one source pixel to a destination pixel of a layer
// composite.
//
// When forward is true, src is the batch's forward pixel. When forward is
// false, src is the batch's reverse pixel and written tells whether the
// batch put a non-transparent forward pixel at this coordinate. eraser marks
// a hard-erase batch.
//
// Reports whether dst was modified.
func Merge(dst, src []byte, forward, eraser, written bool) bool {
	if forward {
		if src[3] == 0 {
			return false
		}
		if eraser {
			clear(dst)
			return true
		}
		if dst[3] > 0 && src[3] < 255 {
			Additive(dst, src)
			return true
		}
		copy(dst, src)
		return true
	}

	// Reverting restores the captured value verbatim. A transparent reverse
	// slot is only meaningful where the forward pass wrote something.
	if src[3] == 0 && !written {
		return false
	}
	copy(dst, src)
	return true
}
