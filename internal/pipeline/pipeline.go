package pipeline

import (
	"runtime"
	"sync"
)

// ForEach runs fn for every index in [0, n) across a bounded pool of
// workers and blocks until all calls finish. Callers write results into
// their own index of a preallocated slice, so document order survives the
// concurrency. workers <= 0 means one worker per CPU.
func ForEach(n, workers int, fn func(i int)) {
	if n <= 0 || fn == nil {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
