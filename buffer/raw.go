// File: buffer/raw.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RawRegion: an opaque allocation plus its release action. Owns nothing
// beyond its memory and how to free it.

package buffer

import (
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
)

// RawRegion is a contiguous span of memory with a defined release action.
// The release action runs exactly once regardless of how many goroutines
// race on the final reference drop.
type RawRegion struct {
	data     []byte
	release  api.Releaser
	released atomic.Bool
}

// NewRawRegion wraps externally supplied memory. A nil release means the
// memory is foreign and nothing is done on drop.
func NewRawRegion(data []byte, release api.Releaser) *RawRegion {
	return &RawRegion{data: data, release: release}
}

// Bytes returns the full span of the region.
func (r *RawRegion) Bytes() []byte { return r.data }

// Size returns the byte capacity of the region.
func (r *RawRegion) Size() int { return len(r.data) }

// doRelease runs the release action exactly once.
func (r *RawRegion) doRelease() {
	if !r.released.CompareAndSwap(false, true) {
		return
	}
	if r.release != nil {
		r.release(r.data)
	}
	r.data = nil
}

// HeapAllocator is the default api.Allocator: plain Go heap slices,
// reclaimed by the garbage collector on Free.
type HeapAllocator struct{}

// Allocate implements api.Allocator.
func (HeapAllocator) Allocate(n int) ([]byte, error) {
	if n < 0 {
		return nil, api.NewError(api.ErrCodeOutOfMemory, "negative allocation size").
			WithContext("bytes", n)
	}
	return make([]byte, n), nil
}

// Free implements api.Allocator. The GC reclaims heap slices.
func (HeapAllocator) Free(data []byte) {}

// DefaultAllocator serves Alloc and pool slab creation unless overridden.
var DefaultAllocator api.Allocator = HeapAllocator{}
