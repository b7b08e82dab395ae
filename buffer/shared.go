// File: buffer/shared.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SharedRegion: reference-counted ownership of a RawRegion. The count is
// explicit because the release action (munmap, pool return, custom deleter)
// must fire deterministically, which the garbage collector cannot provide.

package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
)

// Region is the uniform ownership contract shared by SharedRegion and
// pool-managed regions. Retain and Release must be balanced; the final
// Release triggers the underlying release action exactly once.
type Region interface {
	// Bytes returns the region's full span. Content mutation must
	// happen-before the region is published to another goroutine.
	Bytes() []byte

	// Size returns the byte capacity of the region.
	Size() int

	// Retain adds a reference. Safe from any goroutine.
	Retain()

	// Release drops a reference. The drop that reaches zero observes all
	// prior retains; no new reference may be created once zero is reached.
	Release()
}

// SharedRegion is a reference-counted wrapper around a RawRegion.
// Multiple views may share one region; the raw release action runs when
// the last reference drops.
type SharedRegion struct {
	raw  *RawRegion
	refs atomic.Int32
}

// Alloc returns a new SharedRegion over freshly allocated memory of exactly
// n bytes, holding one reference. Allocation failure surfaces as
// api.ErrOutOfMemory and is not retried.
func Alloc(n int) (*SharedRegion, error) {
	return AllocWith(DefaultAllocator, n)
}

// AllocWith is Alloc with an explicit allocator collaborator.
func AllocWith(alloc api.Allocator, n int) (*SharedRegion, error) {
	data, err := alloc.Allocate(n)
	if err != nil {
		return nil, fmt.Errorf("%w: allocating %d bytes: %v", api.ErrOutOfMemory, n, err)
	}
	return Wrap(data, alloc.Free), nil
}

// Wrap returns a SharedRegion over externally supplied memory, holding one
// reference. A nil release means the caller retains ownership of the bytes
// and nothing happens when the count reaches zero.
func Wrap(data []byte, release api.Releaser) *SharedRegion {
	s := &SharedRegion{raw: NewRawRegion(data, release)}
	s.refs.Store(1)
	return s
}

// Bytes implements Region.
func (s *SharedRegion) Bytes() []byte { return s.raw.Bytes() }

// Size implements Region.
func (s *SharedRegion) Size() int { return s.raw.Size() }

// Retain implements Region.
func (s *SharedRegion) Retain() {
	s.refs.Add(1)
}

// Release implements Region. The decrement that reaches zero runs the raw
// release action; concurrent decrements never double-release.
func (s *SharedRegion) Release() {
	if s.refs.Add(-1) == 0 {
		s.raw.doRelease()
	}
}

// Refs reports the current reference count. Test and diagnostic use only;
// the value is stale the moment it is read.
func (s *SharedRegion) Refs() int32 { return s.refs.Load() }
