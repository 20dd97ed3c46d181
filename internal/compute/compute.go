// Package compute provides the chunked worker loop schemes use to update
// disjoint ranges of the output buffer in parallel.
package compute

import (
	"runtime"
	"sync"
)

var workers = runtime.NumCPU()

// Workers reports the worker count ParallelFor fans out to.
func Workers() int { return workers }

// SetWorkers overrides the worker count; n < 1 restores the CPU count.
// Not safe to call while a step is in flight.
func SetWorkers(n int) {
	if n < 1 {
		workers = runtime.NumCPU()
		return
	}
	workers = n
}

// ParallelFor executes fn over disjoint chunks covering [0, n). Ranges are
// contiguous and never overlap, so fn may write its slice of the output
// without locking. Work smaller than minChunk runs on the calling
// goroutine. The chunk layout depends only on n and the worker count,
// keeping results bit-identical run to run.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	w := workers
	if n <= minChunk || w <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < w {
		w = n / minChunk
	}
	if w < 1 {
		w = 1
	}

	chunk := (n + w - 1) / w

	var wg sync.WaitGroup
	wg.Add(w)
	for i := 0; i < w; i++ {
		start := i * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
