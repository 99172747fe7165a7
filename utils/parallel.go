package utils

import (
	"runtime"
	"sync"
)

//ParallelRange executes fn for each i in [start,end). The range is split among
//workers goroutines; workers <= 0 uses GOMAXPROCS. Iterations must not share
//writable state.
func ParallelRange(start, end, workers int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}
	if workers == 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (total + workers - 1) / workers
	for w := 0; w < workers; w++ {
		s := start + w*chunk
		e := s + chunk
		if e > end {
			e = end
		}
		if s >= end {
			break
		}
		wg.Add(1)
		go func(ss, ee int) {
			for i := ss; i < ee; i++ {
				fn(i)
			}
			wg.Done()
		}(s, e)
	}
	wg.Wait()
}
