// Copyright 2025 The Texel Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package storage provides the public API for keeping tensors on GPU
// texture surfaces.
//
// A Store plans physical shapes through the layout core, validates them
// against hardware limits, and moves data through an Adapter — the
// capability set a graphics device must provide. Two adapters ship with
// the module: backend/webgpu for real GPUs and backend/software for tests
// and GPU-less hosts.
//
// Example:
//
//	adapter := software.New()
//	store := storage.NewStore(adapter, device.DefaultConfig())
//	defer store.Close()
//
//	tex, err := store.Upload(data, layout.Shape{3, 4, 5})
//	...
//	back, err := store.Download(tex)
package storage

import (
	"github.com/texel-ml/texel/internal/device"
	"github.com/texel-ml/texel/internal/storage"
)

// Opaque handles for device resources.
type (
	BufferID      = storage.BufferID
	TextureID     = storage.TextureID
	ShaderID      = storage.ShaderID
	ProgramID     = storage.ProgramID
	FramebufferID = storage.FramebufferID
)

// Adapter is the capability set a graphics device must provide.
type Adapter = storage.Adapter

// Store keeps tensors on 2D texture surfaces.
type Store = storage.Store

// Texture is a handle to a stored tensor.
type Texture = storage.Texture

// MemoryStats describes surface memory usage of a store.
type MemoryStats = storage.MemoryStats

// Limits describes the hardware capabilities relevant to texture storage.
type Limits = device.Limits

// Config carries the per-call policy for planning and storing tensors.
type Config = device.Config

// Failure taxonomy for adapter and allocator operations.
var (
	ErrCreateFailed         = storage.ErrCreateFailed
	ErrCompileFailed        = storage.ErrCompileFailed
	ErrLinkFailed           = storage.ErrLinkFailed
	ErrValidationFailed     = storage.ErrValidationFailed
	ErrUnsupportedExtension = storage.ErrUnsupportedExtension
	ErrInvalidSize          = storage.ErrInvalidSize
	ErrExceedsLimit         = storage.ErrExceedsLimit
)

// NewStore creates a store over the adapter with the given policy.
func NewStore(adapter Adapter, cfg Config) *Store {
	return storage.NewStore(adapter, cfg)
}

// DefaultConfig returns an unpacked configuration with default limits.
func DefaultConfig() Config {
	return device.DefaultConfig()
}

// DefaultLimits returns conservative limits matching common desktop GPUs.
func DefaultLimits() Limits {
	return device.DefaultLimits()
}
