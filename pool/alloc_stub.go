// File: pool/alloc_stub.go
//go:build !linux

//
// Package pool: portable slab fallback on the Go heap.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-buf/api"

// mapSlab allocates a slab on the Go heap; the GC reclaims it, so the
// release action is a no-op.
func mapSlab(n int) ([]byte, api.Releaser, error) {
	return make([]byte, n), nil, nil
}
