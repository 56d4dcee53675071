// Copyright 2025 The Texel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layout provides the public API for mapping logical tensor shapes
// onto 2D texture surfaces.
//
// The core entry points:
//   - TextureShapeOf: plan the physical surface for a logical shape
//   - IsReshapeFree: decide whether a packed reshape needs a data shuffle
//   - Squeeze, AdjustForPacking: the canonicalization steps the planner
//     applies, exposed for callers that need the intermediate shapes
//
// All functions are pure and safe for concurrent use; none of them touch
// the GPU or validate against real hardware limits. See the storage
// package for the allocating boundary.
//
// Example:
//
//	ts := layout.TextureShapeOf(layout.Shape{3, 4, 5}, 16384, false)
//	// ts = layout.TexShape{Rows: 12, Cols: 5}
package layout

import (
	"github.com/texel-ml/texel/internal/layout"
)

// Shape represents the logical dimensions of a tensor.
// A zero-length Shape is a scalar.
type Shape = layout.Shape

// TexShape describes the 2D surface a tensor is stored on.
type TexShape = layout.TexShape

// Squeeze removes every size-1 dimension from the shape, returning the
// reduced shape and the surviving original dimension indices. Rank-0 and
// rank-1 shapes are returned unchanged.
func Squeeze(s Shape) (Shape, []int) {
	return layout.Squeeze(s)
}

// AdjustForPacking rounds the final two dimensions up to the nearest even
// integer, as required by the 2x2 packed encoding.
func AdjustForPacking(s Shape) Shape {
	return layout.AdjustForPacking(s)
}

// TextureShape maps an already-canonicalized logical shape onto a 2D
// surface within maxSize. Most callers want TextureShapeOf instead.
func TextureShape(s Shape, maxSize int) TexShape {
	return layout.TextureShape(s, maxSize)
}

// SquarishShape factors n into a near-square pair of surface dimensions
// covering at least n elements.
func SquarishShape(n int) TexShape {
	return layout.SquarishShape(n)
}

// TextureShapeOf plans the physical surface for a logical shape under a
// per-dimension texture limit, applying packing adjustment and squeezing
// as needed. It never fails; an unfittable shape falls back to a squarish
// surface that the allocator will reject.
func TextureShapeOf(s Shape, maxTexDim int, packed bool) TexShape {
	return layout.TextureShapeOf(s, maxTexDim, packed)
}

// IsReshapeFree reports whether a packed surface holding shape a can be
// reinterpreted as shape b without moving data.
func IsReshapeFree(a, b Shape) bool {
	return layout.IsReshapeFree(a, b)
}
