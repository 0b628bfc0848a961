package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool runs submitted jobs on a fixed set of goroutines. With a single
// worker jobs run inline on the caller's goroutine.
type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Workers normalises a requested worker count; anything below one means
// one worker per available CPU.
func Workers(n int) int {
	if n < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

func Start(numWorkers int) *Pool {
	numWorkers = Workers(numWorkers)

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Size is the number of workers the pool was started with.
func (p *Pool) Size() int {
	return p.workers
}

// Split cuts [0, n) into at most numWorkers contiguous ranges and calls fn
// for each of them, returning when all calls are done.
func Split(n, numWorkers int, fn func(lo, hi int)) {
	numWorkers = min(Workers(numWorkers), n)
	if numWorkers <= 1 {
		fn(0, n)
		return
	}

	pool := Start(numWorkers)
	step := (n + numWorkers - 1) / numWorkers
	for lo := 0; lo < n; lo += step {
		pool.Do(func() {
			fn(lo, min(lo+step, n))
		})
	}
	pool.Wait(true)
}
