package tissue

import (
	"runtime"
	"sync"
)

// ParallelReduce runs fn over contiguous chunks of [0, n) on worker
// goroutines and ORs the per-chunk results. Vertices are integrated
// independently, so chunks need no synchronization beyond the final join.
// Small ranges run serially.
func ParallelReduce(n, minChunk int, fn func(start, end int) bool) bool {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		return fn(0, n)
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers
	hits := make([]bool, workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(idx, s, e int) {
			defer wg.Done()
			hits[idx] = fn(s, e)
		}(w, start, end)
	}

	wg.Wait()

	for _, h := range hits {
		if h {
			return true
		}
	}
	return false
}
