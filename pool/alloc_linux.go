// File: pool/alloc_linux.go
//go:build linux

//
// Package pool: Linux slab mapper using anonymous mmap with a hugepage
// attempt. Slabs are mapped in one call and sliced into tokens; fallback
// order is 2 MiB hugepages, regular pages, Go heap.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-buf/api"
)

const hugePageSize = 2 << 20

// mapSlab maps a slab of at least n bytes and returns the usable span plus
// the release action that unmaps the whole mapping.
func mapSlab(n int) ([]byte, api.Releaser, error) {
	if full, err := unix.Mmap(-1, 0, roundTo(n, hugePageSize),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE|unix.MAP_HUGETLB); err == nil {
		return full[:n], munmapper(full), nil
	}

	if full, err := unix.Mmap(-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE); err == nil {
		return full[:n], munmapper(full), nil
	}

	// mmap refused: heap fallback, GC reclaims.
	return make([]byte, n), nil, nil
}

// munmapper releases the full mapping regardless of the token span passed in.
func munmapper(full []byte) api.Releaser {
	return func([]byte) {
		_ = unix.Munmap(full)
	}
}

func roundTo(n, page int) int {
	return ((n + page - 1) / page) * page
}
