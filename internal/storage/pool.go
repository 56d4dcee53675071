package storage

import (
	"sync"

	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/texture"
)

// maxPooledPerClass caps how many released surfaces of one size class are
// retained for reuse.
const maxPooledPerClass = 16

// poolKey is the size class of a surface. Textures are only
// interchangeable when dimensions and format match exactly.
type poolKey struct {
	rows, cols int
	format     texture.Format
}

// TexturePool retains released surfaces for reuse, keyed by size class.
// Reusing a texture skips a device round trip, which dominates small
// allocations.
type TexturePool struct {
	adapter Adapter

	mu   sync.Mutex
	free map[poolKey][]TextureID

	hits   uint64
	misses uint64
}

// NewTexturePool creates an empty pool backed by the given adapter.
func NewTexturePool(adapter Adapter) *TexturePool {
	return &TexturePool{
		adapter: adapter,
		free:    make(map[poolKey][]TextureID),
	}
}

// Acquire returns a pooled surface of the exact size class, or creates a
// new one through the adapter.
func (p *TexturePool) Acquire(texels layout.TexShape, format texture.Format) (TextureID, error) {
	key := poolKey{rows: texels.Rows, cols: texels.Cols, format: format}

	p.mu.Lock()
	if ids := p.free[key]; len(ids) > 0 {
		id := ids[len(ids)-1]
		p.free[key] = ids[:len(ids)-1]
		p.hits++
		p.mu.Unlock()
		return id, nil
	}
	p.misses++
	p.mu.Unlock()

	return p.adapter.CreateTexture(texels, format)
}

// Release returns a surface to its size class, or destroys it when the
// class is already full.
func (p *TexturePool) Release(id TextureID, texels layout.TexShape, format texture.Format) error {
	key := poolKey{rows: texels.Rows, cols: texels.Cols, format: format}

	p.mu.Lock()
	if len(p.free[key]) < maxPooledPerClass {
		p.free[key] = append(p.free[key], id)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	return p.adapter.DestroyTexture(id)
}

// Clear destroys every pooled surface. Called on store shutdown.
func (p *TexturePool) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for key, ids := range p.free {
		for _, id := range ids {
			if err := p.adapter.DestroyTexture(id); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		delete(p.free, key)
	}
	return firstErr
}

// Stats returns pool hit/miss counters and the number of retained surfaces.
func (p *TexturePool) Stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ids := range p.free {
		pooled += len(ids)
	}
	return p.hits, p.misses, pooled
}
