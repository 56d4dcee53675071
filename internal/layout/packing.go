package layout

// AdjustForPacking rounds the final two dimensions of the shape up to the
// nearest even integer. Under 2x2 packed encoding a texel covers a 2x2 block
// of the trailing two logical axes; an odd extent leaves the second half of
// the final block addressing out-of-range positions, so size and layout
// computations must treat the extent as rounded up.
//
// Dimensions other than the final two are untouched. Even extents (and zero)
// are unchanged. Shapes of rank < 2 pass through unchanged.
func AdjustForPacking(s Shape) Shape {
	out := s.Clone()
	if len(out) < 2 {
		return out
	}
	for i := len(out) - 2; i < len(out); i++ {
		out[i] += out[i] % 2
	}
	return out
}
