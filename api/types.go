// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

import "time"

// WaitMode selects the pool exhaustion policy for blocking acquire calls.
type WaitMode int

const (
	// WaitNever fails immediately with ErrPoolOverflow when no token is free.
	WaitNever WaitMode = iota
	// WaitBounded blocks up to the configured timeout, then fails with
	// ErrTimeout.
	WaitBounded
	// WaitForever blocks until a token is released or the pool is closed.
	// With no releasing goroutine this is a permanent stall; upstream flow
	// control is expected to prevent that scenario.
	WaitForever
)

func (m WaitMode) String() string {
	switch m {
	case WaitNever:
		return "never"
	case WaitBounded:
		return "bounded"
	case WaitForever:
		return "forever"
	default:
		return "unknown"
	}
}

// DefaultWaitTimeout bounds WaitBounded acquires when no timeout is configured.
const DefaultWaitTimeout = 100 * time.Millisecond

// Releaser is a type-erased release action stored alongside a raw region.
// It runs exactly once, when the last reference to the region drops.
// A nil Releaser means the memory is foreign: the caller retains ownership
// and no action is taken.
type Releaser func(data []byte)

// Allocator supplies raw memory for non-pooled regions and pool slabs.
// Implementations must be safe for concurrent use; wrap thread-unsafe
// allocators behind their own synchronization before handing them in.
type Allocator interface {
	// Allocate returns a slice of exactly n bytes, or ErrOutOfMemory.
	Allocate(n int) ([]byte, error)

	// Free returns memory previously handed out by Allocate.
	Free(data []byte)
}

// PoolStats aggregates acquire/release accounting for one pool.
type PoolStats struct {
	TokenBytes int
	Capacity   int
	Available  int

	Acquires  uint64
	Overflows uint64
	Timeouts  uint64
	Returns   uint64
	// Freed counts tokens released to memory instead of re-pooled,
	// which only happens after the pool is closed.
	Freed uint64
}

// StatsSource is implemented by anything exposing pool statistics.
type StatsSource interface {
	Stats() PoolStats
}
