// File: buffer/serialize.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Canonical wire encoding of a View, for transport across a process or
// network boundary where shared memory is unavailable:
//
//	1 flag byte        0x01 = null view, encoding stops here
//	4 bytes            little-endian uint32 byte length
//	length bytes       content, verbatim: no padding, no compression,
//	                   no byte-order conversion of the payload
//
// Views longer than 2^32-1 bytes are not supported on the wire. Decoding
// always allocates a fresh non-pooled SharedRegion and copies the bytes in.

package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/momentics/hioload-buf/api"
)

const (
	flagData byte = 0x00
	flagNull byte = 0x01
)

// EncodedSize returns the exact number of bytes Encode will write for v.
func EncodedSize(v View) int {
	if v.Null() {
		return 1
	}
	return 1 + 4 + v.Length()
}

// Encode writes the wire form of v to w.
func Encode(w io.Writer, v View) error {
	if v.Null() {
		_, err := w.Write([]byte{flagNull})
		return err
	}
	if uint64(v.Length()) > math.MaxUint32 {
		return fmt.Errorf("%w: view length %d exceeds wire limit", api.ErrDataFormat, v.Length())
	}
	var hdr [5]byte
	hdr[0] = flagData
	binary.LittleEndian.PutUint32(hdr[1:], uint32(v.Length()))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(v.Bytes())
	return err
}

// Decode reads one wire-encoded view from r. The returned view is backed by
// a fresh SharedRegion (never pool-backed) and owns its only reference.
// Truncated or inconsistent input surfaces as api.ErrDataFormat; the
// transport layer decides whether to drop the message or fail the stream.
func Decode(r io.Reader) (View, error) {
	var flag [1]byte
	if _, err := io.ReadFull(r, flag[:]); err != nil {
		return View{}, fmt.Errorf("%w: reading null flag: %v", api.ErrDataFormat, err)
	}
	switch flag[0] {
	case flagNull:
		return View{}, nil
	case flagData:
	default:
		return View{}, fmt.Errorf("%w: invalid null flag 0x%02x", api.ErrDataFormat, flag[0])
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return View{}, fmt.Errorf("%w: reading length field: %v", api.ErrDataFormat, err)
	}
	length := int(binary.LittleEndian.Uint32(lenBuf[:]))

	v, err := NewView(length)
	if err != nil {
		return View{}, err
	}
	if _, err := io.ReadFull(r, v.Bytes()); err != nil {
		v.Release()
		return View{}, fmt.Errorf("%w: %d content bytes promised, read failed: %v",
			api.ErrDataFormat, length, err)
	}
	return v, nil
}
