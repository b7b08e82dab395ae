// File: pool/pool.go
// Package pool implements fixed-capacity, slab-backed token pools with
// self-recycling regions.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
)

// Config declares a pool at construction time. Pool size is fixed: there is
// no dynamic resizing, exhaustion is a backpressure signal.
type Config struct {
	// TokenBytes is the capacity of each token.
	TokenBytes int
	// TokenCount is the fixed number of tokens.
	TokenCount int
	// Wait selects the exhaustion policy used by Acquire.
	Wait api.WaitMode
	// WaitTimeout bounds WaitBounded acquires; api.DefaultWaitTimeout if zero.
	WaitTimeout time.Duration
	// Allocator overrides slab allocation. Nil selects the platform slab
	// mapper (mmap on Linux, heap elsewhere).
	Allocator api.Allocator
	// Name labels the pool on stats surfaces. Derived from TokenBytes if empty.
	Name string
}

// DefaultConfig returns a non-blocking pool configuration.
func DefaultConfig(tokenBytes, tokenCount int) Config {
	return Config{
		TokenBytes: tokenBytes,
		TokenCount: tokenCount,
		Wait:       api.WaitNever,
	}
}

// Pool owns TokenCount equally sized tokens pre-sliced from one bulk slab
// region. Tokens are checked out as PooledRegions and return themselves on
// last-reference drop. Acquire and release are safe from any goroutine.
type Pool struct {
	cfg  Config
	slab *buffer.SharedRegion

	mu      sync.Mutex
	free    []*PooledRegion // LIFO, no ordering guarantee toward acquirers
	waiters *queue.Queue    // of *waiter, guarded by mu
	closed  bool

	acquires  atomic.Uint64
	overflows atomic.Uint64
	timeouts  atomic.Uint64
	returns   atomic.Uint64
	freed     atomic.Uint64
}

// waiter is one goroutine blocked in Acquire. The channel carries the direct
// token hand-off (nil on pool close); gone marks a departed waiter and is
// only touched under the pool mutex.
type waiter struct {
	ch   chan *PooledRegion
	gone bool
}

// New creates a pool with cfg.TokenCount tokens of cfg.TokenBytes each,
// allocated as a single slab to avoid per-token allocation calls. Slab
// allocation failure surfaces as api.ErrOutOfMemory.
func New(cfg Config) (*Pool, error) {
	if cfg.TokenBytes <= 0 || cfg.TokenCount <= 0 {
		return nil, api.NewError(api.ErrCodeOutOfMemory, "invalid pool geometry").
			WithContext("tokenBytes", cfg.TokenBytes).
			WithContext("tokenCount", cfg.TokenCount)
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("tokens-%dB", cfg.TokenBytes)
	}

	total := cfg.TokenBytes * cfg.TokenCount
	data, release, err := slabFor(cfg, total)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		cfg:     cfg,
		slab:    buffer.Wrap(data, release),
		free:    make([]*PooledRegion, 0, cfg.TokenCount),
		waiters: queue.New(),
	}
	for i := 0; i < cfg.TokenCount; i++ {
		t := &PooledRegion{
			pool: p,
			data: data[i*cfg.TokenBytes : (i+1)*cfg.TokenBytes],
		}
		p.free = append(p.free, t)
	}
	return p, nil
}

// slabFor allocates the pool's backing memory: explicit allocator if
// configured, platform slab mapper otherwise.
func slabFor(cfg Config, total int) ([]byte, api.Releaser, error) {
	if cfg.Allocator != nil {
		data, err := cfg.Allocator.Allocate(total)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: pool slab of %d bytes: %v",
				api.ErrOutOfMemory, total, err)
		}
		return data, cfg.Allocator.Free, nil
	}
	return mapSlab(total)
}

// Name returns the pool's stats label.
func (p *Pool) Name() string { return p.cfg.Name }

// Capacity returns the fixed token count.
func (p *Pool) Capacity() int { return p.cfg.TokenCount }

// TokenBytes returns the per-token capacity.
func (p *Pool) TokenBytes() int { return p.cfg.TokenBytes }

// Available returns the number of tokens currently in the free set.
func (p *Pool) Available() int {
	p.mu.Lock()
	n := len(p.free)
	p.mu.Unlock()
	return n
}

// TryAcquire checks a token out without blocking. Fails with
// api.ErrPoolOverflow when all tokens are checked out.
func (p *Pool) TryAcquire() (*PooledRegion, error) {
	return p.acquire(api.WaitNever, 0)
}

// Acquire checks a token out under the pool's configured exhaustion policy.
// Under WaitForever with no releasing goroutine this stalls permanently;
// that is the configured behavior, not a defect. Callers needing
// cancellation use AcquireTimeout.
func (p *Pool) Acquire() (*PooledRegion, error) {
	return p.acquire(p.cfg.Wait, p.cfg.WaitTimeout)
}

// AcquireTimeout blocks up to d for a token, then fails with api.ErrTimeout.
func (p *Pool) AcquireTimeout(d time.Duration) (*PooledRegion, error) {
	return p.acquire(api.WaitBounded, d)
}

func (p *Pool) acquire(mode api.WaitMode, timeout time.Duration) (*PooledRegion, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", api.ErrPoolClosed, p.cfg.Name)
	}
	if n := len(p.free); n > 0 {
		t := p.free[n-1]
		p.free = p.free[:n-1]
		p.checkoutLocked(t)
		p.mu.Unlock()
		return t, nil
	}
	if mode == api.WaitNever {
		p.overflows.Add(1)
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: all %d tokens of %s checked out",
			api.ErrPoolOverflow, p.cfg.TokenCount, p.cfg.Name)
	}

	w := &waiter{ch: make(chan *PooledRegion, 1)}
	p.waiters.Add(w)
	p.mu.Unlock()

	if mode == api.WaitForever {
		t := <-w.ch
		if t == nil {
			return nil, fmt.Errorf("%w: %s", api.ErrPoolClosed, p.cfg.Name)
		}
		return t, nil
	}

	if timeout <= 0 {
		timeout = api.DefaultWaitTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case t := <-w.ch:
		if t == nil {
			return nil, fmt.Errorf("%w: %s", api.ErrPoolClosed, p.cfg.Name)
		}
		return t, nil
	case <-timer.C:
		p.mu.Lock()
		// A release may have handed a token over concurrently with expiry.
		select {
		case t := <-w.ch:
			p.mu.Unlock()
			if t == nil {
				return nil, fmt.Errorf("%w: %s", api.ErrPoolClosed, p.cfg.Name)
			}
			return t, nil
		default:
			w.gone = true
			p.timeouts.Add(1)
			p.mu.Unlock()
			return nil, fmt.Errorf("%w: no token of %s released within %v",
				api.ErrTimeout, p.cfg.Name, timeout)
		}
	}
}

// checkoutLocked binds a free token to a fresh checkout. The token holds one
// slab reference while checked out.
func (p *Pool) checkoutLocked(t *PooledRegion) {
	t.refs.Store(1)
	p.slab.Retain()
	p.acquires.Add(1)
}

// recycle takes a token back when its last reference drops. Never called by
// users directly. A live waiter gets the token handed over without it ever
// touching the free set; otherwise it re-enters the free set. After Close,
// the token's slab share is released instead.
func (p *Pool) recycle(t *PooledRegion) {
	p.mu.Lock()
	if p.closed {
		p.freed.Add(1)
		p.mu.Unlock()
		p.slab.Release()
		return
	}
	p.returns.Add(1)
	for p.waiters.Length() > 0 {
		w := p.waiters.Remove().(*waiter)
		if w.gone {
			continue
		}
		t.refs.Store(1)
		p.acquires.Add(1)
		w.ch <- t // cap 1, single hand-off: never blocks
		p.mu.Unlock()
		return
	}
	p.free = append(p.free, t)
	p.mu.Unlock()
	p.slab.Release()
}

// Close marks the pool destroyed. Blocked acquirers fail with
// api.ErrPoolClosed; tokens still checked out stay valid and release their
// memory share on return instead of re-pooling. Closing twice is a no-op.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	// Idle tokens hold no slab references; the pool's own reference,
	// dropped below, covers them.
	p.free = nil
	for p.waiters.Length() > 0 {
		w := p.waiters.Remove().(*waiter)
		if !w.gone {
			w.ch <- nil
		}
	}
	p.mu.Unlock()
	p.slab.Release()
}

// Stats implements api.StatsSource.
func (p *Pool) Stats() api.PoolStats {
	return api.PoolStats{
		TokenBytes: p.cfg.TokenBytes,
		Capacity:   p.cfg.TokenCount,
		Available:  p.Available(),
		Acquires:   p.acquires.Load(),
		Overflows:  p.overflows.Load(),
		Timeouts:   p.timeouts.Load(),
		Returns:    p.returns.Load(),
		Freed:      p.freed.Load(),
	}
}

var _ api.StatsSource = (*Pool)(nil)
