package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartRunsEveryJob(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)

		var count atomic.Int64
		for range 100 {
			pool.Do(func() { count.Add(1) })
		}
		pool.Wait(true)

		assert.Equal(t, int64(100), count.Load(), "workers %d", workers)
		assert.GreaterOrEqual(t, pool.Size(), 1)
	}
}

func TestSingleWorkerRunsInline(t *testing.T) {
	pool := Start(1)

	ran := false
	pool.Do(func() { ran = true })
	assert.True(t, ran)

	pool.Cancel()
	pool.Wait(true)
}

func TestCancelIsIdempotent(t *testing.T) {
	pool := Start(3)
	pool.Cancel()
	assert.NotPanics(t, func() {
		pool.Cancel()
		pool.Wait(true)
	})
}

func TestSplitCoversRangeOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{0, 4}, {1, 4}, {7, 3}, {100, 1}, {100, 0}, {101, 8}, {5, 50},
	} {
		var (
			mu   sync.Mutex
			seen = make([]int, tc.n)
		)
		Split(tc.n, tc.workers, func(lo, hi int) {
			assert.LessOrEqual(t, lo, hi)
			mu.Lock()
			defer mu.Unlock()
			for i := lo; i < hi; i++ {
				seen[i]++
			}
		})

		for i, c := range seen {
			assert.Equal(t, 1, c, "n=%d workers=%d index %d", tc.n, tc.workers, i)
		}
	}
}
