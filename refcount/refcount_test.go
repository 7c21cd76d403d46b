package refcount

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResource struct {
	Object
	destroyed int
}

func newTestResource() *testResource {
	return &testResource{Object: NewObject()}
}

func (r *testResource) Destroy() { r.destroyed++ }

func TestAcquireRelease(t *testing.T) {
	r := newTestResource()
	assert.Equal(t, int64(0), r.Refs())

	got := Acquire(r)
	assert.Same(t, r, got)
	assert.Equal(t, int64(1), r.Refs())

	Acquire(r)
	assert.Equal(t, int64(2), r.Refs())

	Release(r)
	assert.Equal(t, int64(1), r.Refs())
	assert.Equal(t, 0, r.destroyed)

	Release(r)
	assert.Equal(t, int64(0), r.Refs())
	assert.Equal(t, 1, r.destroyed, "Destroy runs exactly once, on the last release")
}

func TestReleaseNil(t *testing.T) {
	assert.NotPanics(t, func() { Release(nil) })

	// Typed nil pointers behave like nil interfaces.
	var typed *testResource
	assert.NotPanics(t, func() { Release(typed) })
}

func TestAcquireNil(t *testing.T) {
	assert.NotPanics(t, func() { Acquire[Counted](nil) })

	var typed *testResource
	got := Acquire(typed)
	assert.Nil(t, got)

	h := NewHandle(typed)
	_, ok := h.Get()
	assert.False(t, ok, "handle to nil is the empty handle")
	assert.Zero(t, h.ID())
}

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(nil))
	var typed *testResource
	assert.True(t, IsNil(typed))
	assert.False(t, IsNil(newTestResource()))
}

func TestOverReleasePanics(t *testing.T) {
	r := newTestResource()
	Acquire(r)
	Release(r)
	assert.Panics(t, func() { Release(r) })
}

func TestIdentity(t *testing.T) {
	a := newTestResource()
	b := newTestResource()
	require.NotZero(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID(), "identities are process-unique")

	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b))
	assert.False(t, Same(a, nil))
	assert.True(t, Same(nil, nil))

	var typed *testResource
	assert.True(t, Same(typed, nil))
	assert.False(t, Same(a, typed))
}

func TestConcurrentRetainRelease(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 1000

	r := newTestResource()
	Acquire(r)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				Acquire(r)
				Release(r)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), r.Refs())
	assert.Equal(t, 0, r.destroyed)
	Release(r)
	assert.Equal(t, 1, r.destroyed)
}

func TestHandle(t *testing.T) {
	r := newTestResource()
	h := NewHandle(r)
	assert.Equal(t, int64(1), r.Refs())
	assert.Equal(t, r.ID(), h.ID())

	got, ok := h.Get()
	require.True(t, ok)
	assert.Same(t, r, got)

	h.Release()
	assert.Equal(t, 1, r.destroyed)
	_, ok = h.Get()
	assert.False(t, ok)
	assert.Zero(t, h.ID())

	// Releasing the same handle variable again is a no-op.
	assert.NotPanics(t, h.Release)
	assert.Equal(t, 1, r.destroyed)
}

func TestHandleClone(t *testing.T) {
	r := newTestResource()
	h := NewHandle(r)
	c := h.Clone()
	assert.Equal(t, int64(2), r.Refs())
	assert.True(t, h.Equal(c))

	h.Release()
	assert.Equal(t, 0, r.destroyed, "clone keeps the object alive")
	c.Release()
	assert.Equal(t, 1, r.destroyed)
}

func TestZeroHandle(t *testing.T) {
	var h Handle[*testResource]
	_, ok := h.Get()
	assert.False(t, ok)
	assert.Zero(t, h.ID())
	assert.NotPanics(t, h.Release)

	c := h.Clone()
	_, ok = c.Get()
	assert.False(t, ok)
	assert.True(t, h.Equal(c), "two empty handles are equal")
}
