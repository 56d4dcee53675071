// Package parallel provides the chunked parallel execution used by the
// host-side texel codecs on large surfaces.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 256, // Roughly one texture row per chunk minimum.
	}
}

// Range executes f over contiguous sub-ranges [start, end) covering [0, n).
// Each invocation of f owns its sub-range exclusively, so f may write to
// disjoint slices without locking. Falls back to a single sequential call
// when parallelism is disabled or n is too small to be worth splitting.
func Range(n int, cfg Config, f func(start, end int)) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || n < cfg.MinChunkSize || cfg.NumWorkers < 2 {
		f(0, n)
		return
	}

	chunkSize := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	if chunkSize < cfg.MinChunkSize {
		chunkSize = cfg.MinChunkSize
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, cfg Config, f func(i int)) {
	Range(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	})
}
