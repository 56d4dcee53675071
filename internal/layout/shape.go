// Package layout maps N-dimensional logical tensor shapes onto 2D texture
// surfaces and decides when packed representations can be reinterpreted
// without moving data. All functions are pure and safe for concurrent use.
package layout

import "fmt"

// Shape represents the logical dimensions of a tensor.
// A zero-length Shape is a scalar.
type Shape []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks that the shape is allocatable (all dimensions > 0).
// Zero-sized dimensions are legal for layout math but cannot be allocated.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("layout: invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// TexShape describes the 2D surface a tensor is stored on.
// Rows*Cols may exceed the logical element count; the excess is padding.
type TexShape struct {
	Rows int
	Cols int
}

// Area returns the number of addressable positions on the surface.
func (t TexShape) Area() int {
	return t.Rows * t.Cols
}

// Equal checks if two physical shapes are identical.
func (t TexShape) Equal(other TexShape) bool {
	return t.Rows == other.Rows && t.Cols == other.Cols
}

// String returns the shape as "RowsxCols".
func (t TexShape) String() string {
	return fmt.Sprintf("%dx%d", t.Rows, t.Cols)
}
