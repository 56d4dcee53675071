// Copyright 2025 The Texel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU storage adapter.
//
// WebGPU is a cross-platform graphics and compute API; go-webgpu binds it
// without CGO. The adapter holds tensor surfaces in device storage
// buffers and implements the full storage.Adapter capability set.
//
// Example:
//
//	if !webgpu.IsAvailable() {
//	    adapter = software.New() // graceful fallback
//	}
//	engine, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := storage.NewStore(engine, storage.DefaultConfig())
//	defer store.Close()
package webgpu

import (
	internalwebgpu "github.com/texel-ml/texel/internal/backend/webgpu"
	"github.com/texel-ml/texel/storage"
)

// Engine is the WebGPU-backed storage adapter.
type Engine = internalwebgpu.Engine

// Compile-time check that Engine implements storage.Adapter.
var _ storage.Adapter = (*Engine)(nil)

// WGSL kernels for device-side 2x2 repacking, compiled through the
// adapter's CompileShader/LinkProgram operations.
const (
	PackKernelWGSL   = internalwebgpu.PackKernelWGSL
	UnpackKernelWGSL = internalwebgpu.UnpackKernelWGSL
)

// New creates a WebGPU engine.
//
// Returns an error if WebGPU initialization fails (e.g. no compatible GPU
// or missing wgpu_native library). Call Close when done to free device
// resources.
func New() (*Engine, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It attempts to initialize a WebGPU adapter to verify that a compatible
// GPU and drivers are present, making graceful fallback to the software
// adapter easy.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
