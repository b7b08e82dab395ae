// File: flow/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC ring for handing views from producing to consuming
// goroutines without locks. Vyukov sequence-number scheme; capacity is
// rounded up to a power of two.

package flow

import "sync/atomic"

const cacheLinePad = 64

type slot[T any] struct {
	seq  atomic.Uint64
	item T
}

// Ring is a bounded multi-producer multi-consumer queue. Enqueue and
// Dequeue never block and never allocate.
type Ring[T any] struct {
	head  atomic.Uint64
	_     [cacheLinePad]byte
	tail  atomic.Uint64
	_     [cacheLinePad]byte
	mask  uint64
	slots []slot[T]
}

// NewRing creates a ring holding at least capacity items.
func NewRing[T any](capacity int) *Ring[T] {
	size := 2
	for size < capacity {
		size <<= 1
	}
	r := &Ring[T]{
		mask:  uint64(size - 1),
		slots: make([]slot[T], size),
	}
	for i := range r.slots {
		r.slots[i].seq.Store(uint64(i))
	}
	return r
}

// Enqueue adds an item; returns false when the ring is full.
func (r *Ring[T]) Enqueue(item T) bool {
	for {
		tail := r.tail.Load()
		s := &r.slots[tail&r.mask]
		diff := int64(s.seq.Load()) - int64(tail)
		switch {
		case diff == 0:
			if r.tail.CompareAndSwap(tail, tail+1) {
				s.item = item
				s.seq.Store(tail + 1)
				return true
			}
		case diff < 0:
			return false // full
		}
		// slot claimed by a faster producer, retry
	}
}

// Dequeue removes the oldest item; ok is false when the ring is empty.
func (r *Ring[T]) Dequeue() (item T, ok bool) {
	for {
		head := r.head.Load()
		s := &r.slots[head&r.mask]
		diff := int64(s.seq.Load()) - int64(head+1)
		switch {
		case diff == 0:
			if r.head.CompareAndSwap(head, head+1) {
				item = s.item
				var zero T
				s.item = zero
				s.seq.Store(head + r.mask + 1)
				return item, true
			}
		case diff < 0:
			var zero T
			return zero, false // empty
		}
	}
}

// Len returns the approximate number of queued items.
func (r *Ring[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the rounded-up capacity.
func (r *Ring[T]) Cap() int { return len(r.slots) }
