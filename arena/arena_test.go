package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsuite/dlist/arena"
)

func TestAllocGet(t *testing.T) {
	t.Parallel()

	a := arena.New[string]()

	h1, err := a.Alloc("first")
	require.NoError(t, err)
	require.False(t, h1.IsNil())

	h2, err := a.Alloc("second")
	require.NoError(t, err)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, a.Cap())

	v1, err := a.Get(h1)
	require.NoError(t, err)
	assert.Equal(t, "first", *v1)

	v2, err := a.Get(h2)
	require.NoError(t, err)
	assert.Equal(t, "second", *v2)

	*v1 = "updated"
	v1, err = a.Get(h1)
	require.NoError(t, err)
	assert.Equal(t, "updated", *v1)
}

func TestNilHandle(t *testing.T) {
	t.Parallel()

	var h arena.Handle
	assert.True(t, h.IsNil())

	a := arena.New[int]()

	_, err := a.Get(h)
	assert.ErrorIs(t, err, arena.ErrStaleHandle)

	err = a.Release(h)
	assert.ErrorIs(t, err, arena.ErrStaleHandle)
}

func TestRelease(t *testing.T) {
	t.Parallel()

	t.Run("handle goes stale", func(t *testing.T) {
		t.Parallel()

		a := arena.New[int]()

		h, err := a.Alloc(42)
		require.NoError(t, err)

		require.NoError(t, a.Release(h))
		assert.Equal(t, 0, a.Len())

		_, err = a.Get(h)
		assert.ErrorIs(t, err, arena.ErrStaleHandle)
	})

	t.Run("double release is detected", func(t *testing.T) {
		t.Parallel()

		a := arena.New[int]()

		h, err := a.Alloc(42)
		require.NoError(t, err)

		require.NoError(t, a.Release(h))
		assert.ErrorIs(t, a.Release(h), arena.ErrStaleHandle)
		assert.Equal(t, 0, a.Len())
	})

	t.Run("slot reuse invalidates old handles", func(t *testing.T) {
		t.Parallel()

		a := arena.New[int]()

		old, err := a.Alloc(1)
		require.NoError(t, err)
		require.NoError(t, a.Release(old))

		fresh, err := a.Alloc(2)
		require.NoError(t, err)

		// The freed slot is reused, so the table did not grow.
		assert.Equal(t, 1, a.Cap())

		_, err = a.Get(old)
		assert.ErrorIs(t, err, arena.ErrStaleHandle)

		v, err := a.Get(fresh)
		require.NoError(t, err)
		assert.Equal(t, 2, *v)
	})
}

func TestCapacityBound(t *testing.T) {
	t.Parallel()

	a := arena.New[int](arena.WithCapacity(2))

	_, err := a.Alloc(1)
	require.NoError(t, err)
	h, err := a.Alloc(2)
	require.NoError(t, err)

	_, err = a.Alloc(3)
	require.ErrorIs(t, err, arena.ErrFull)
	assert.Equal(t, 2, a.Len())

	require.NoError(t, a.Release(h))

	_, err = a.Alloc(4)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
}

func TestReset(t *testing.T) {
	t.Parallel()

	a := arena.New[int]()

	handles := make([]arena.Handle, 0, 5)
	for i := range 5 {
		h, err := a.Alloc(i)
		require.NoError(t, err)
		handles = append(handles, h)
	}

	a.Reset()

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 5, a.Cap())

	for _, h := range handles {
		_, err := a.Get(h)
		assert.ErrorIs(t, err, arena.ErrStaleHandle)
	}

	// The arena stays usable after reset.
	h, err := a.Alloc(42)
	require.NoError(t, err)

	v, err := a.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 42, *v)
	assert.Equal(t, 1, a.Len())
}
