// Copyright 2025 The Texel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package software provides the in-memory storage adapter.
//
// It implements the same capability set as the WebGPU adapter with plain
// process memory, so stores work identically on hosts without a GPU, and
// tests can exercise hardware-limit boundaries with tiny configurable
// limits.
package software

import (
	internalsoftware "github.com/texel-ml/texel/internal/backend/software"
	"github.com/texel-ml/texel/storage"
)

// Adapter is an in-memory storage adapter.
type Adapter = internalsoftware.Adapter

// Compile-time check that Adapter implements storage.Adapter.
var _ storage.Adapter = (*Adapter)(nil)

// New creates a software adapter with default limits.
func New() *Adapter {
	return internalsoftware.New()
}

// NewWithLimits creates a software adapter reporting the given limits.
// Tiny limits make hardware-boundary conditions testable.
func NewWithLimits(limits storage.Limits) *Adapter {
	return internalsoftware.NewWithLimits(limits)
}
