// File: buffer/view.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// View: a cheap value-typed handle over a sub-range of a Region. Views carry
// an element-size tag for typed access and serialize through the wire codec
// in serialize.go.
//
// Reference discipline: every View returned by a constructor, Slice, or
// Retain owns exactly one reference to its region and must be Released
// exactly once. Plain struct copies of a View share that single owned
// reference; call Retain to mint an independently owned handle before
// handing a view to another goroutine.

package buffer

import (
	"fmt"
	"unsafe"

	"github.com/momentics/hioload-buf/api"
)

// View is a value-typed handle: a data window, an element-size tag, and an
// ownership reference to a Region. The zero View is null: no region, zero
// length, address zero.
type View struct {
	data   []byte
	elem   int
	region Region
}

// NewView allocates a fresh non-pooled SharedRegion of n bytes and returns
// a view spanning it. The view owns the region's only reference.
func NewView(n int) (View, error) {
	r, err := Alloc(n)
	if err != nil {
		return View{}, err
	}
	return View{data: r.Bytes(), elem: 1, region: r}, nil
}

// ViewOf wraps an existing region in a view spanning the whole region,
// zero-copy. The caller transfers one reference to the returned view.
func ViewOf(r Region) View {
	return View{data: r.Bytes(), elem: 1, region: r}
}

// ViewOfRange wraps a sub-range of an existing region, zero-copy. The caller
// transfers one reference to the returned view. Fails with
// api.ErrRangeViolation if the range exceeds the region's bounds.
func ViewOfRange(r Region, off, n int) (View, error) {
	if off < 0 || n < 0 || off+n > r.Size() {
		return View{}, fmt.Errorf("%w: range [%d:%d) of region size %d",
			api.ErrRangeViolation, off, off+n, r.Size())
	}
	return View{data: r.Bytes()[off : off+n], elem: 1, region: r}, nil
}

// Null reports whether the view holds no region.
func (v View) Null() bool { return v.region == nil }

// Length returns the byte length of the view.
func (v View) Length() int { return len(v.data) }

// Address returns the numeric address of the view's first byte, or 0 for a
// null or empty view. Exposed for external introspection alongside Length.
func (v View) Address() uintptr {
	if len(v.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&v.data[0]))
}

// Bytes returns the view's data window. The window aliases region memory;
// no copy is made.
func (v View) Bytes() []byte { return v.data }

// ElemSize returns the element-size tag in bytes (1 for untyped views).
func (v View) ElemSize() int { return v.elem }

// Elems returns the number of whole logical elements in the view.
func (v View) Elems() int {
	if v.elem <= 0 {
		return len(v.data)
	}
	return len(v.data) / v.elem
}

// WithElemSize returns the same handle with the element-size tag overridden.
// The returned view replaces the receiver; it does not own an additional
// reference.
func (v View) WithElemSize(sz int) View {
	v.elem = sz
	return v
}

// Region exposes the ownership reference, or nil for a null view.
func (v View) Region() Region { return v.region }

// Slice returns a new view over a sub-range of the same region, sharing
// ownership with no copy. The element-size tag propagates. The returned
// view owns its own reference. Fails with api.ErrRangeViolation when
// off+n exceeds the view's length.
func (v View) Slice(off, n int) (View, error) {
	if off < 0 || n < 0 || off+n > len(v.data) {
		return View{}, fmt.Errorf("%w: slice [%d:%d) of view length %d",
			api.ErrRangeViolation, off, off+n, len(v.data))
	}
	if v.region != nil {
		v.region.Retain()
	}
	return View{data: v.data[off : off+n], elem: v.elem, region: v.region}, nil
}

// Retain mints an independently owned copy of the handle, bumping the
// region's reference count. No-op on a null view.
func (v View) Retain() View {
	if v.region != nil {
		v.region.Retain()
	}
	return v
}

// Release drops the view's region reference. Release never forces the
// region free directly; the region's own count drives that. No-op on a
// null view.
func (v View) Release() {
	if v.region != nil {
		v.region.Release()
	}
}

// As reinterprets the view's window as a slice of T. Unchecked contract:
// the caller is responsible for the window being large enough and suitably
// aligned for T. Trailing bytes smaller than one T are dropped.
func As[T any](v View) []T {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 || len(v.data) < sz {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&v.data[0])), len(v.data)/sz)
}
