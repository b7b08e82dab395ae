// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for hioload-buf components.

package benchmarks

import (
	"bytes"
	"testing"
	"time"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
	"github.com/momentics/hioload-buf/flow"
	"github.com/momentics/hioload-buf/pool"
)

// BenchmarkPoolAcquireRelease measures the hot path: token available,
// no blocking, no allocation.
func BenchmarkPoolAcquireRelease(b *testing.B) {
	p, err := pool.New(pool.Config{
		TokenBytes: 4096, TokenCount: 64,
		Wait: api.WaitBounded, WaitTimeout: time.Second,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r, err := p.Acquire()
			if err != nil {
				b.Fatal(err)
			}
			r.Release()
		}
	})
}

// BenchmarkViewSlice measures zero-copy sub-slicing.
func BenchmarkViewSlice(b *testing.B) {
	v, err := buffer.NewView(1 << 16)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sub, err := v.Slice(128, 4096)
		if err != nil {
			b.Fatal(err)
		}
		sub.Release()
	}
}

// BenchmarkRingThroughput measures lock-free view hand-off.
func BenchmarkRingThroughput(b *testing.B) {
	r := flow.NewRing[buffer.View](1024)
	v, err := buffer.NewView(1024)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Release()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if !r.Enqueue(v) {
				r.Dequeue()
				r.Enqueue(v)
			}
		}
	})
}

// BenchmarkEncodeDecode measures the wire codec round trip.
func BenchmarkEncodeDecode(b *testing.B) {
	v, err := buffer.NewView(4096)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Release()

	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := buffer.Encode(&buf, v); err != nil {
			b.Fatal(err)
		}
		out, err := buffer.Decode(&buf)
		if err != nil {
			b.Fatal(err)
		}
		out.Release()
	}
	b.SetBytes(4096)
}
