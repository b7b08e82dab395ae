package pool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/pool"
)

// Hammer a small pool from many goroutines: no token may ever be checked
// out twice at once, and no token may leak.
func TestPoolConcurrentNoDoubleCheckoutNoLeak(t *testing.T) {
	const (
		capacity = 4
		workers  = 16
		rounds   = 2000
	)
	p, err := pool.New(pool.Config{
		TokenBytes: 512, TokenCount: capacity,
		Wait: api.WaitBounded, WaitTimeout: time.Second,
	})
	require.NoError(t, err)
	defer p.Close()

	var inUse sync.Map // token address -> struct{}
	var doubles atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				r, err := p.Acquire()
				if err != nil {
					continue
				}
				addr := &r.Bytes()[0]
				if _, loaded := inUse.LoadOrStore(addr, struct{}{}); loaded {
					doubles.Add(1)
				}
				r.Bytes()[0] = byte(id) // touch the token
				inUse.Delete(addr)
				r.Release()
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, int64(0), doubles.Load(), "token double-checkout observed")
	require.Equal(t, capacity, p.Available(), "tokens leaked")
}

// Release must be safe from a goroutine other than the acquiring one.
func TestPoolCrossGoroutineRelease(t *testing.T) {
	p, err := pool.New(pool.DefaultConfig(256, 8))
	require.NoError(t, err)
	defer p.Close()

	handoff := make(chan *pool.PooledRegion, 8)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() { // consumer releases everything the producer acquires
		defer wg.Done()
		for r := range handoff {
			r.Release()
		}
	}()

	for i := 0; i < 500; i++ {
		r, err := p.AcquireTimeout(time.Second)
		require.NoError(t, err)
		handoff <- r
	}
	close(handoff)
	wg.Wait()

	require.Equal(t, 8, p.Available())
}
