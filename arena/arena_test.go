package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocBlock(t *testing.T) {
	a := New(128)
	b, err := a.AllocBlock()
	require.NoError(t, err)
	assert.Equal(t, 128, b.Cap())
	assert.Equal(t, 0, b.Used())
	assert.Equal(t, 128, b.Remaining())
	assert.Nil(t, b.Next())
	assert.Equal(t, 1, a.Live())
}

func TestNewPanicsOnBadBlockSize(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(-1) })
}

func TestReserve(t *testing.T) {
	a := New(16)
	b, err := a.AllocBlock()
	require.NoError(t, err)

	s := b.Reserve(10)
	assert.Len(t, s, 10)
	assert.Equal(t, 10, b.Used())
	assert.Equal(t, 6, b.Remaining())

	copy(s, "0123456789")
	assert.Equal(t, []byte("0123456789"), b.Data())

	assert.Panics(t, func() { b.Reserve(7) })
}

func TestMaxBlocks(t *testing.T) {
	a := New(32, WithMaxBlocks(2))

	b1, err := a.AllocBlock()
	require.NoError(t, err)
	_, err = a.AllocBlock()
	require.NoError(t, err)

	_, err = a.AllocBlock()
	require.ErrorIs(t, err, ErrExhausted)

	// Reclaimed blocks do not count against the budget.
	a.Reclaim(b1)
	b3, err := a.AllocBlock()
	require.NoError(t, err)
	assert.Same(t, b1, b3)
}

func TestReclaimChain(t *testing.T) {
	a := New(32)
	head, err := a.AllocBlock()
	require.NoError(t, err)
	mid, err := a.AllocBlock()
	require.NoError(t, err)
	tail, err := a.AllocBlock()
	require.NoError(t, err)
	head.SetNext(mid)
	mid.SetNext(tail)
	head.Reserve(5)

	a.Reclaim(head)
	assert.Equal(t, 0, a.Live())

	// Recycled blocks come back empty and unlinked.
	for i := 0; i < 3; i++ {
		b, err := a.AllocBlock()
		require.NoError(t, err)
		assert.Equal(t, 0, b.Used())
		assert.Nil(t, b.Next())
	}
	assert.Equal(t, 3, a.Live())
	assert.Equal(t, 96, a.Cap())
}

func TestReclaimNil(t *testing.T) {
	a := New(32)
	a.Reclaim(nil)
	assert.Equal(t, 0, a.Live())
}

func TestPeak(t *testing.T) {
	a := New(32)
	b1, _ := a.AllocBlock()
	b2, _ := a.AllocBlock()
	assert.Equal(t, 2, a.Peak())

	a.Reclaim(b1)
	a.Reclaim(b2)
	assert.Equal(t, 0, a.Live())
	assert.Equal(t, 2, a.Peak())

	// Peak never decreases.
	_, _ = a.AllocBlock()
	assert.Equal(t, 2, a.Peak())
}

func TestReset(t *testing.T) {
	a := New(32)
	b1, _ := a.AllocBlock()
	b2, _ := a.AllocBlock()
	a.Reclaim(b1)

	a.Reset()
	assert.Equal(t, 32, a.Cap(), "live block still counted")
	assert.Equal(t, 1, a.Live())

	// The dropped free list is not handed out again.
	b3, err := a.AllocBlock()
	require.NoError(t, err)
	assert.NotSame(t, b1, b3)
	_ = b2
}
