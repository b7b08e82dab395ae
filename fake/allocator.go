// Package fake
// Author: momentics <momentics@gmail.com>
//
// Counting allocator and releaser doubles for lifecycle tests.

package fake

import (
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
)

// CountingAllocator is an api.Allocator double that counts calls and can be
// made to fail after a set number of allocations.
type CountingAllocator struct {
	allocs atomic.Int64
	frees  atomic.Int64

	// FailAfter fails allocations with api.ErrOutOfMemory once this many
	// have succeeded. Zero means never fail.
	FailAfter int64
}

// Allocate implements api.Allocator.
func (a *CountingAllocator) Allocate(n int) ([]byte, error) {
	if a.FailAfter > 0 && a.allocs.Load() >= a.FailAfter {
		return nil, api.ErrOutOfMemory
	}
	a.allocs.Add(1)
	return make([]byte, n), nil
}

// Free implements api.Allocator.
func (a *CountingAllocator) Free(data []byte) {
	a.frees.Add(1)
}

// Allocs returns the number of successful allocations.
func (a *CountingAllocator) Allocs() int64 { return a.allocs.Load() }

// Frees returns the number of release calls.
func (a *CountingAllocator) Frees() int64 { return a.frees.Load() }

// CountingReleaser builds an api.Releaser that counts invocations, for
// asserting the exactly-once release property.
type CountingReleaser struct {
	calls atomic.Int64
}

// Releaser returns the counting release action.
func (r *CountingReleaser) Releaser() api.Releaser {
	return func([]byte) {
		r.calls.Add(1)
	}
}

// Calls returns how many times the release action ran.
func (r *CountingReleaser) Calls() int64 { return r.calls.Load() }
