package layout

// Squeeze removes every size-1 dimension from the shape. It returns the
// reduced shape and the original indices of the surviving dimensions, so
// callers can reconstruct axis correspondence.
//
// Rank-0 and rank-1 shapes are returned unchanged: there is nothing to
// squeeze below rank 1.
func Squeeze(s Shape) (Shape, []int) {
	if len(s) <= 1 {
		kept := make([]int, len(s))
		for i := range kept {
			kept[i] = i
		}
		return s.Clone(), kept
	}

	squeezed := make(Shape, 0, len(s))
	kept := make([]int, 0, len(s))
	for i, dim := range s {
		if dim != 1 {
			squeezed = append(squeezed, dim)
			kept = append(kept, i)
		}
	}
	return squeezed, kept
}

// squeezeEqual reports whether two shapes are identical once all size-1
// dimensions are removed. Unlike Squeeze, unit dimensions are stripped even
// from rank-1 shapes, so [1] compares equal to a scalar.
func squeezeEqual(a, b Shape) bool {
	return stripUnits(a).Equal(stripUnits(b))
}

func stripUnits(s Shape) Shape {
	out := make(Shape, 0, len(s))
	for _, dim := range s {
		if dim != 1 {
			out = append(out, dim)
		}
	}
	return out
}
