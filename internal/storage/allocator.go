package storage

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/texture"
)

// Allocator is where planned physical shapes meet the true hardware limit.
// The shape mapper never fails and its squarish fallback may exceed the
// limit; surfacing that — instead of clamping or hiding it — happens here.
type Allocator struct {
	adapter Adapter
	pool    *TexturePool

	mu             sync.Mutex
	allocatedBytes uint64
	peakBytes      uint64
	activeTextures int64
}

// NewAllocator creates an allocator with its own texture pool.
func NewAllocator(adapter Adapter) *Allocator {
	return &Allocator{
		adapter: adapter,
		pool:    NewTexturePool(adapter),
	}
}

// Alloc validates the surface against the device limits and acquires a
// texture for it. It distinguishes two failures:
//
//   - a non-positive dimension, reported via ErrInvalidSize;
//   - a dimension or byte size over the device maximum, reported via
//     ErrExceedsLimit.
//
// Both match ErrValidationFailed with errors.Is.
func (a *Allocator) Alloc(texels layout.TexShape, format texture.Format) (TextureID, error) {
	if texels.Rows <= 0 || texels.Cols <= 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "cannot allocate %s surface %s", format, texels)
	}

	limits := a.adapter.Limits()
	if texels.Rows > limits.MaxTextureDim || texels.Cols > limits.MaxTextureDim {
		return 0, errors.Wrapf(ErrExceedsLimit, "surface %s over max dimension %d", texels, limits.MaxTextureDim)
	}
	bytes := int64(texels.Area()) * int64(format.BytesPerTexel())
	if bytes > limits.MaxBufferBytes {
		return 0, errors.Wrapf(ErrExceedsLimit, "surface %s needs %s, device allows %s", texels,
			humanize.IBytes(uint64(bytes)), humanize.IBytes(uint64(limits.MaxBufferBytes)))
	}

	id, err := a.pool.Acquire(texels, format)
	if err != nil {
		return 0, err
	}

	a.trackAlloc(uint64(bytes))
	klog.V(2).Infof("storage: allocated %s surface %s (%s)", format, texels, humanize.IBytes(uint64(bytes)))
	return id, nil
}

// Free returns a surface to the pool.
func (a *Allocator) Free(id TextureID, texels layout.TexShape, format texture.Format) error {
	bytes := uint64(texels.Area()) * uint64(format.BytesPerTexel())
	a.trackFree(bytes)
	return a.pool.Release(id, texels, format)
}

// Close drains the pool.
func (a *Allocator) Close() error {
	return a.pool.Clear()
}

func (a *Allocator) trackAlloc(bytes uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.allocatedBytes += bytes
	a.activeTextures++
	if a.allocatedBytes > a.peakBytes {
		a.peakBytes = a.allocatedBytes
	}
}

func (a *Allocator) trackFree(bytes uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.allocatedBytes >= bytes {
		a.allocatedBytes -= bytes
	}
	a.activeTextures--
}

// Stats reports current memory accounting plus pool counters.
func (a *Allocator) Stats() MemoryStats {
	a.mu.Lock()
	allocated := a.allocatedBytes
	peak := a.peakBytes
	active := a.activeTextures
	a.mu.Unlock()

	hits, misses, pooled := a.pool.Stats()
	return MemoryStats{
		AllocatedBytes: allocated,
		PeakBytes:      peak,
		ActiveTextures: active,
		PoolHits:       hits,
		PoolMisses:     misses,
		PooledTextures: pooled,
	}
}
