package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRangeCoversEveryIndex(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	for _, n := range []int{0, 1, 7, 8, 100, 1000} {
		seen := make([]int32, n)
		Range(n, cfg, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}

func TestRangeSequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}
	calls := 0
	Range(100, cfg, func(start, end int) {
		calls++
		if start != 0 || end != 100 {
			t.Errorf("sequential fallback got [%d, %d), want [0, 100)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential fallback made %d calls, want 1", calls)
	}
}

func TestRangeSmallInputStaysSequential(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}
	calls := 0
	Range(10, cfg, func(_, _ int) { calls++ })
	if calls != 1 {
		t.Errorf("small input made %d calls, want 1", calls)
	}
}

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	var sum int64
	For(1000, cfg, func(i int) {
		atomic.AddInt64(&sum, int64(i))
	})
	if want := int64(999 * 1000 / 2); sum != want {
		t.Errorf("sum = %d, want %d", sum, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.NumWorkers < 1 {
		t.Errorf("NumWorkers = %d, want >= 1", cfg.NumWorkers)
	}
	if cfg.MinChunkSize < 1 {
		t.Errorf("MinChunkSize = %d, want >= 1", cfg.MinChunkSize)
	}
}
