package storage

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// MemoryStats describes surface memory usage of a store.
type MemoryStats struct {
	// AllocatedBytes currently held by live surfaces.
	AllocatedBytes uint64
	// PeakBytes is the high-water mark since the store was created.
	PeakBytes uint64
	// ActiveTextures counts surfaces not yet returned to the pool.
	ActiveTextures int64
	// Texture pool counters.
	PoolHits       uint64
	PoolMisses     uint64
	PooledTextures int
}

// String renders the stats with humanized byte sizes.
func (m MemoryStats) String() string {
	return fmt.Sprintf("allocated %s (peak %s), %d active textures, pool %d/%d hits, %d retained",
		humanize.IBytes(m.AllocatedBytes), humanize.IBytes(m.PeakBytes),
		m.ActiveTextures, m.PoolHits, m.PoolHits+m.PoolMisses, m.PooledTextures)
}
