// Package buffer
// Author: momentics <momentics@gmail.com>
//
// Zero-copy memory regions and views for high-rate dataflow pipelines.
//
// RawRegion owns bytes plus a release action; SharedRegion adds an explicit
// reference count so the release action fires deterministically when the
// last holder drops; View is a cheap value handle over a sub-range of a
// region with typed reinterpretation and a canonical wire encoding.
// Pool-managed regions that recycle instead of freeing live in the pool
// package and plug in through the Region interface.
package buffer
