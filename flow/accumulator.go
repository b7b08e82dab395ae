// File: flow/accumulator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Accumulator gathers in-order views arriving on a consumer port and serves
// contiguous byte spans from the front. A request inside the front view is
// zero-copy; a request spanning view boundaries coalesces into a fresh
// region, which is the only copying path.
//
// One accumulator belongs to one consuming goroutine, matching the
// single-port discipline of the surrounding dataflow engine. It is not safe
// for concurrent use.

package flow

import (
	"fmt"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
)

// Accumulator is an unbounded in-order byte accumulator over views.
type Accumulator struct {
	q       *queue.Queue // of buffer.View
	headOff int          // consumed bytes of the front view
	total   int          // unconsumed bytes across all queued views
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{q: queue.New()}
}

// Push appends a view. The accumulator takes over the caller's reference
// and releases it once the view's bytes are fully consumed. Null and empty
// views are released immediately.
func (a *Accumulator) Push(v buffer.View) {
	if v.Length() == 0 {
		v.Release()
		return
	}
	a.q.Add(v)
	a.total += v.Length()
}

// Bytes returns the number of unconsumed bytes buffered.
func (a *Accumulator) Bytes() int { return a.total }

// Front returns a view of the next n bytes without consuming them; ok is
// false when fewer than n bytes are buffered. The returned view owns its
// own reference and must be released by the caller. When n fits inside the
// front view the result is a zero-copy slice; otherwise the bytes are
// coalesced into a fresh non-pooled region.
func (a *Accumulator) Front(n int) (buffer.View, bool) {
	if n <= 0 || n > a.total {
		return buffer.View{}, n == 0
	}
	front := a.q.Peek().(buffer.View)
	if front.Length()-a.headOff >= n {
		v, err := front.Slice(a.headOff, n)
		if err != nil {
			return buffer.View{}, false
		}
		return v, true
	}

	out, err := buffer.NewView(n)
	if err != nil {
		return buffer.View{}, false
	}
	copied := 0
	skip := a.headOff
	for i := 0; copied < n; i++ {
		v := a.q.Get(i).(buffer.View)
		copied += copy(out.Bytes()[copied:], v.Bytes()[skip:])
		skip = 0
	}
	return out, true
}

// Pop consumes n bytes from the front, releasing every fully consumed view.
// Fails with api.ErrRangeViolation when n exceeds the buffered byte count.
func (a *Accumulator) Pop(n int) error {
	if n < 0 || n > a.total {
		return fmt.Errorf("%w: pop %d of %d buffered bytes",
			api.ErrRangeViolation, n, a.total)
	}
	a.total -= n
	for n > 0 {
		front := a.q.Peek().(buffer.View)
		rem := front.Length() - a.headOff
		if n < rem {
			a.headOff += n
			return nil
		}
		n -= rem
		a.q.Remove()
		front.Release()
		a.headOff = 0
	}
	return nil
}

// Reset releases every queued view and empties the accumulator.
func (a *Accumulator) Reset() {
	for a.q.Length() > 0 {
		a.q.Remove().(buffer.View).Release()
	}
	a.headOff = 0
	a.total = 0
}
