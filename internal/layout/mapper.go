package layout

import "math"

// TextureShape maps a logical shape onto a 2D physical surface, where each
// physical dimension should stay within maxSize. The input is expected to be
// already adjusted for packing and squeezed per TextureShapeOf.
//
// The search is a strict priority ladder; the first option that fits wins:
//
//	rank <= 1: (N, 1) if N fits.
//	rank == 2: the shape itself, if both dims fit.
//	rank == 3: merge the leading two dims into rows, else the trailing two
//	           into columns.
//	rank == 4: merge the leading three dims into rows, else the trailing
//	           three into columns.
//	otherwise: a near-square factoring of the element count.
//
// The ladder prefers a natural 2D reading of common 3D/4D tensor shapes
// (image batches, convolution filters) over the generic square fallback.
//
// TextureShape never fails. The squarish fallback may itself exceed maxSize
// when the element count cannot be factored within it; rejecting such a
// shape is the allocator's responsibility, never this function's.
func TextureShape(s Shape, maxSize int) TexShape {
	switch len(s) {
	case 0, 1:
		if n := s.NumElements(); n <= maxSize {
			return TexShape{Rows: n, Cols: 1}
		}
	case 2:
		if s[0] <= maxSize && s[1] <= maxSize {
			return TexShape{Rows: s[0], Cols: s[1]}
		}
	case 3:
		if s[0]*s[1] <= maxSize && s[2] <= maxSize {
			return TexShape{Rows: s[0] * s[1], Cols: s[2]}
		}
		if s[0] <= maxSize && s[1]*s[2] <= maxSize {
			return TexShape{Rows: s[0], Cols: s[1] * s[2]}
		}
	case 4:
		if s[0]*s[1]*s[2] <= maxSize && s[3] <= maxSize {
			return TexShape{Rows: s[0] * s[1] * s[2], Cols: s[3]}
		}
		if s[0] <= maxSize && s[1]*s[2]*s[3] <= maxSize {
			return TexShape{Rows: s[0], Cols: s[1] * s[2] * s[3]}
		}
	}
	return SquarishShape(s.NumElements())
}

// SquarishShape factors n into a near-square pair of dimensions whose
// product is at least n. The factoring is deterministic: Rows = ceil(sqrt(n))
// and Cols = ceil(n/Rows).
func SquarishShape(n int) TexShape {
	if n <= 0 {
		return TexShape{}
	}
	rows := int(math.Ceil(math.Sqrt(float64(n))))
	cols := (n + rows - 1) / rows
	return TexShape{Rows: rows, Cols: cols}
}

// TextureShapeOf plans the physical surface for a logical shape under the
// given per-dimension texture limit. Under packed encoding the trailing two
// dims are rounded up to even and the effective limit doubles, since each
// texel covers a 2x2 block of logical positions. Rank-2 shapes skip the
// squeeze so an already acceptable 2D layout is not disturbed.
func TextureShapeOf(s Shape, maxTexDim int, packed bool) TexShape {
	limit := maxTexDim
	if packed {
		limit *= 2
		s = AdjustForPacking(s)
	}
	if len(s) != 2 {
		s, _ = Squeeze(s)
	}
	return TextureShape(s, limit)
}
