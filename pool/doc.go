// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity buffer pools for zero-copy dataflow pipelines.
//
// A Pool pre-slices one bulk slab into equally sized tokens; producers check
// tokens out as PooledRegions, wrap them in views, and hand them downstream.
// The last reference drop returns a token to its pool from any goroutine
// without the caller ever invoking release directly. Exhaustion is a
// backpressure signal: fail immediately, wait bounded, or wait forever,
// selected per pool. See pool.go, pooled.go, manager.go.
package pool
