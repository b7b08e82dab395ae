package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/buffer"
	"github.com/momentics/hioload-buf/fake"
	"github.com/momentics/hioload-buf/flow"
)

func pushBytes(t *testing.T, a *flow.Accumulator, data []byte) {
	t.Helper()
	v, err := buffer.NewView(len(data))
	require.NoError(t, err)
	copy(v.Bytes(), data)
	a.Push(v)
}

func TestAccumulatorZeroCopyFront(t *testing.T) {
	a := flow.NewAccumulator()
	defer a.Reset()
	pushBytes(t, a, []byte{0, 1, 2, 3, 4})
	pushBytes(t, a, []byte{5, 6, 7, 8, 9})
	require.Equal(t, 10, a.Bytes())

	front, ok := a.Front(3)
	require.True(t, ok)
	require.Equal(t, []byte{0, 1, 2}, front.Bytes())
	front.Release()
}

func TestAccumulatorCoalescesAcrossViews(t *testing.T) {
	a := flow.NewAccumulator()
	defer a.Reset()
	pushBytes(t, a, []byte{0, 1, 2, 3, 4})
	pushBytes(t, a, []byte{5, 6, 7, 8, 9})

	front, ok := a.Front(8)
	require.True(t, ok)
	require.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7}, front.Bytes())
	front.Release()

	// peeking does not consume
	require.Equal(t, 10, a.Bytes())
}

func TestAccumulatorPop(t *testing.T) {
	a := flow.NewAccumulator()
	defer a.Reset()
	pushBytes(t, a, []byte{0, 1, 2, 3, 4})
	pushBytes(t, a, []byte{5, 6, 7, 8, 9})
	pushBytes(t, a, []byte{10, 11, 12, 13, 14})

	require.NoError(t, a.Pop(5))
	front, ok := a.Front(5)
	require.True(t, ok)
	require.Equal(t, []byte{5, 6, 7, 8, 9}, front.Bytes())
	front.Release()

	require.NoError(t, a.Pop(7)) // consumes across a view boundary
	front, ok = a.Front(3)
	require.True(t, ok)
	require.Equal(t, []byte{12, 13, 14}, front.Bytes())
	front.Release()

	require.ErrorIs(t, a.Pop(4), api.ErrRangeViolation)
	require.NoError(t, a.Pop(3))
	require.Equal(t, 0, a.Bytes())

	_, ok = a.Front(1)
	require.False(t, ok, "drained accumulator has nothing to serve")
}

func TestAccumulatorReleasesConsumedViews(t *testing.T) {
	a := flow.NewAccumulator()
	rel := &fake.CountingReleaser{}

	for i := 0; i < 3; i++ {
		region := buffer.Wrap(make([]byte, 4), rel.Releaser())
		a.Push(buffer.ViewOf(region))
	}

	require.NoError(t, a.Pop(4))
	require.Equal(t, int64(1), rel.Calls())

	require.NoError(t, a.Pop(2)) // partial: front view still referenced
	require.Equal(t, int64(1), rel.Calls())

	a.Reset()
	require.Equal(t, int64(3), rel.Calls())
}

func TestAccumulatorDropsEmptyViews(t *testing.T) {
	a := flow.NewAccumulator()
	rel := &fake.CountingReleaser{}
	region := buffer.Wrap(nil, rel.Releaser())
	a.Push(buffer.ViewOf(region))

	require.Equal(t, int64(1), rel.Calls(), "empty view released on push")
	require.Equal(t, 0, a.Bytes())

	a.Push(buffer.View{}) // null view: no-op
	require.Equal(t, 0, a.Bytes())
}
