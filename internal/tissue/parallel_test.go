package tissue

import (
	"sync/atomic"
	"testing"
)

func TestParallelReduceCoversRange(t *testing.T) {
	const n = 10000

	var visited int64
	hit := ParallelReduce(n, 64, func(start, end int) bool {
		atomic.AddInt64(&visited, int64(end-start))
		return false
	})

	if visited != n {
		t.Errorf("expected %d indices visited, got %d", n, visited)
	}
	if hit {
		t.Error("expected no hit")
	}
}

func TestParallelReduceOr(t *testing.T) {
	const n = 5000
	target := 4321

	hit := ParallelReduce(n, 64, func(start, end int) bool {
		return start <= target && target < end
	})

	if !hit {
		t.Error("expected hit for in-range target")
	}
}

func TestParallelReduceSmallRange(t *testing.T) {
	calls := 0
	ParallelReduce(10, 64, func(start, end int) bool {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("expected single serial chunk [0,10), got [%d,%d)", start, end)
		}
		return false
	})
	if calls != 1 {
		t.Errorf("expected 1 serial call, got %d", calls)
	}
}
