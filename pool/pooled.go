// File: pool/pooled.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// PooledRegion: a checked-out pool token. Reads and writes like any other
// region, but the last reference drop returns the token to its pool instead
// of freeing memory. Exactly one PooledRegion object exists per checked-out
// token; many views may reference it.

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-buf/buffer"
)

// PooledRegion is a reference-counted token slice bound to its originating
// pool. No operation here blocks; only Pool.Acquire may.
type PooledRegion struct {
	pool *Pool
	data []byte
	refs atomic.Int32
}

// Bytes implements buffer.Region.
func (t *PooledRegion) Bytes() []byte { return t.data }

// Size implements buffer.Region.
func (t *PooledRegion) Size() int { return len(t.data) }

// Retain implements buffer.Region. Safe from any goroutine.
func (t *PooledRegion) Retain() {
	t.refs.Add(1)
}

// Release implements buffer.Region. The drop that reaches zero recycles the
// token into the pool's free set, or releases its memory share if the pool
// has been closed. Safe from a goroutine other than the acquiring one.
func (t *PooledRegion) Release() {
	if t.refs.Add(-1) == 0 {
		t.pool.recycle(t)
	}
}

// View wraps the token in a full-span view, zero-copy. The caller's
// reference transfers to the returned view.
func (t *PooledRegion) View() buffer.View {
	return buffer.ViewOf(t)
}

// Refs reports the current reference count. Test and diagnostic use only.
func (t *PooledRegion) Refs() int32 { return t.refs.Load() }

var _ buffer.Region = (*PooledRegion)(nil)
