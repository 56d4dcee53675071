package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texel-ml/texel/internal/backend/software"
	"github.com/texel-ml/texel/internal/device"
	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/storage"
	"github.com/texel-ml/texel/internal/texture"
)

func tinyLimits() device.Limits {
	return device.Limits{MaxTextureDim: 16, MaxBufferBytes: 4096}
}

func TestAllocRejectsInvalidSize(t *testing.T) {
	alloc := storage.NewAllocator(software.NewWithLimits(tinyLimits()))

	for _, ts := range []layout.TexShape{{Rows: 0, Cols: 4}, {Rows: 4, Cols: 0}, {Rows: -1, Cols: 4}, {Rows: 0, Cols: 0}} {
		_, err := alloc.Alloc(ts, texture.R32F)
		require.Error(t, err, "Alloc(%v) should fail", ts)
		assert.ErrorIs(t, err, storage.ErrInvalidSize)
		assert.ErrorIs(t, err, storage.ErrValidationFailed)
		assert.NotErrorIs(t, err, storage.ErrExceedsLimit)
	}
}

func TestAllocRejectsOversized(t *testing.T) {
	alloc := storage.NewAllocator(software.NewWithLimits(tinyLimits()))

	for _, ts := range []layout.TexShape{{Rows: 17, Cols: 4}, {Rows: 4, Cols: 17}, {Rows: 17, Cols: 17}} {
		_, err := alloc.Alloc(ts, texture.R32F)
		require.Error(t, err, "Alloc(%v) should fail", ts)
		assert.ErrorIs(t, err, storage.ErrExceedsLimit)
		assert.ErrorIs(t, err, storage.ErrValidationFailed)
		assert.NotErrorIs(t, err, storage.ErrInvalidSize)
	}
}

func TestAllocRejectsOverBudget(t *testing.T) {
	// 16x16 RGBA32F needs 4096 bytes of texels; the budget allows 4095.
	alloc := storage.NewAllocator(software.NewWithLimits(
		device.Limits{MaxTextureDim: 16, MaxBufferBytes: 4095}))

	_, err := alloc.Alloc(layout.TexShape{Rows: 16, Cols: 16}, texture.RGBA32F)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrExceedsLimit)
}

// The mapper's squarish fallback may exceed the hardware limit; the
// allocator is where that surfaces, as a distinct descriptive error.
func TestAllocSurfacesMapperFallback(t *testing.T) {
	alloc := storage.NewAllocator(software.NewWithLimits(
		device.Limits{MaxTextureDim: 5, MaxBufferBytes: 1 << 20}))

	planned := layout.TextureShape(layout.Shape{3, 4, 5, 6}, 5)
	_, err := alloc.Alloc(planned, texture.R32F)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrExceedsLimit)
}

func TestAllocTracksMemory(t *testing.T) {
	alloc := storage.NewAllocator(software.NewWithLimits(tinyLimits()))

	id, err := alloc.Alloc(layout.TexShape{Rows: 4, Cols: 4}, texture.R32F)
	require.NoError(t, err)

	stats := alloc.Stats()
	assert.Equal(t, uint64(4*4*4), stats.AllocatedBytes)
	assert.Equal(t, int64(1), stats.ActiveTextures)

	require.NoError(t, alloc.Free(id, layout.TexShape{Rows: 4, Cols: 4}, texture.R32F))
	stats = alloc.Stats()
	assert.Equal(t, uint64(0), stats.AllocatedBytes)
	assert.Equal(t, int64(0), stats.ActiveTextures)
	assert.Equal(t, uint64(4*4*4), stats.PeakBytes)
	assert.NotEmpty(t, stats.String())
}
