package buffer_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
	"github.com/momentics/hioload-buf/fake"
)

func TestSharedRegionReleaseExactlyOnce(t *testing.T) {
	for _, n := range []int{0, 1, 64, 4096} {
		rel := &fake.CountingReleaser{}
		s := buffer.Wrap(make([]byte, n), rel.Releaser())
		require.Equal(t, int64(0), rel.Calls())
		s.Release()
		require.Equal(t, int64(1), rel.Calls(), "size %d", n)
	}
}

func TestSharedRegionRetainDelaysRelease(t *testing.T) {
	rel := &fake.CountingReleaser{}
	s := buffer.Wrap(make([]byte, 16), rel.Releaser())
	s.Retain()
	s.Retain()

	s.Release()
	s.Release()
	require.Equal(t, int64(0), rel.Calls())
	s.Release()
	require.Equal(t, int64(1), rel.Calls())
}

func TestSharedRegionConcurrentFinalRelease(t *testing.T) {
	const holders = 64
	rel := &fake.CountingReleaser{}
	s := buffer.Wrap(make([]byte, 128), rel.Releaser())
	for i := 0; i < holders-1; i++ {
		s.Retain()
	}

	var wg sync.WaitGroup
	for i := 0; i < holders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Release()
		}()
	}
	wg.Wait()
	require.Equal(t, int64(1), rel.Calls())
}

func TestAllocReportsOutOfMemory(t *testing.T) {
	alloc := &fake.CountingAllocator{FailAfter: 1}
	s, err := buffer.AllocWith(alloc, 8)
	require.NoError(t, err)

	_, err = buffer.AllocWith(alloc, 8)
	require.ErrorIs(t, err, api.ErrOutOfMemory)

	s.Release()
	require.Equal(t, int64(1), alloc.Frees())
}

func TestWrapForeignMemoryNoAction(t *testing.T) {
	data := []byte{1, 2, 3}
	s := buffer.Wrap(data, nil)
	require.Equal(t, 3, s.Size())
	s.Release() // must not panic, caller retains ownership
	require.Equal(t, byte(1), data[0])
}

func TestStructuredErrorMatchesSentinel(t *testing.T) {
	err := api.NewError(api.ErrCodeTimeout, "waited too long").
		WithContext("pool", "tokens-1024B")
	require.ErrorIs(t, err, api.ErrTimeout)
	require.False(t, errors.Is(err, api.ErrPoolOverflow))
	require.Contains(t, err.Error(), "waited too long")
}
