package layout

// IsReshapeFree reports whether a packed physical representation computed
// for shape a can be reinterpreted directly as the packed representation for
// shape b without rearranging any data.
//
// Packing binds pairs of adjacent rows and pairs of adjacent columns over
// the trailing two logical axes, so only those axes matter: a reshape is
// layout-free exactly when the row-pairing and column-pairing boundaries are
// preserved. Even extents keep pairings aligned; an unchanged trailing
// dimension keeps column pairing identical even when row packing changes.
//
// IsReshapeFree is total, reflexive, and symmetric.
func IsReshapeFree(a, b Shape) bool {
	pa := trailingPair(a)
	pb := trailingPair(b)

	if pa.Equal(pb) {
		return true
	}
	// A scalar has no pairing boundaries to preserve.
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	// Empty tensors carry no data to rearrange.
	if hasZero(pa) || hasZero(pb) {
		return true
	}
	// One side is effectively a vector: free only when the shapes agree
	// after removing unit dimensions.
	if len(pa) < 2 || len(pb) < 2 {
		return squeezeEqual(a, b)
	}
	return pa[0]%2 == 0 && pb[0]%2 == 0 &&
		(pa[1] == pb[1] || (pa[1]%2 == 0 && pb[1]%2 == 0))
}

// trailingPair returns the last two dimensions of s (fewer if rank < 2).
func trailingPair(s Shape) Shape {
	if len(s) <= 2 {
		return s
	}
	return s[len(s)-2:]
}

func hasZero(s Shape) bool {
	for _, dim := range s {
		if dim == 0 {
			return true
		}
	}
	return false
}
