package containers

import (
	"testing"

	iter_util "github.com/TheBitDrifter/util/iter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueWrapAndGrow(t *testing.T) {
	q := NewQueue[string](4)
	assert.Equal(t, 0, q.Cap())

	require.NoError(t, q.Push("a"))
	assert.Equal(t, 4, q.Cap())
	require.NoError(t, q.Push("b"))
	require.NoError(t, q.Push("c"))

	assert.Equal(t, "a", q.Pop())

	// d fills the tail slot, e wraps to physical index 0.
	require.NoError(t, q.Push("d"))
	require.NoError(t, q.Push("e"))
	assert.Equal(t, 4, q.Cap())
	assert.Equal(t, 4, q.Len())

	// The ring is full; f forces a grow that linearizes the live range.
	require.NoError(t, q.Push("f"))
	assert.Greater(t, q.Cap(), 4)
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, iter_util.Collect(q.Values()))
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int](0)
	for i := 0; i < 50; i++ {
		require.NoError(t, q.Push(i))
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, i, q.Pop())
	}
	assert.True(t, q.IsEmpty())

	_, ok := q.TryPop()
	assert.False(t, ok)
	assert.PanicsWithValue(t, EmptyContainerError{Op: "Pop"}, func() { q.Pop() })
}

func TestQueueTryPush(t *testing.T) {
	q := NewQueue[int](2)

	// TryPush never allocates, so an unallocated ring is full.
	assert.False(t, q.TryPush(1))

	require.NoError(t, q.Push(1))
	assert.True(t, q.TryPush(2))
	assert.False(t, q.TryPush(3))
	assert.Equal(t, 2, q.Cap())

	q.Pop()
	assert.True(t, q.TryPush(3))
	assert.Equal(t, []int{2, 3}, iter_util.Collect(q.Values()))
}

func TestQueuePeeking(t *testing.T) {
	q := NewQueue[int](4)
	require.NoError(t, q.Push(10))
	require.NoError(t, q.Push(20))
	require.NoError(t, q.Push(30))

	assert.Equal(t, 10, q.Front())
	assert.Equal(t, 30, q.Back())
	assert.Equal(t, 20, q.Peek(1))

	v, err := q.At(2)
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	_, err = q.At(3)
	var oor OutOfRangeError
	require.ErrorAs(t, err, &oor)

	assert.Panics(t, func() { q.Peek(3) })
	assert.Panics(t, func() { NewQueue[int](1).Front() })
	assert.Panics(t, func() { NewQueue[int](1).Back() })
}

func TestQueuePeekAfterWrap(t *testing.T) {
	q := NewQueue[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Push(i))
	}
	q.Pop()
	q.Pop()
	require.NoError(t, q.Push(4))
	require.NoError(t, q.Push(5))

	// Logical order survives the wrap.
	for i := 0; i < 4; i++ {
		assert.Equal(t, i+2, q.Peek(i))
	}
	assert.Equal(t, 2, q.Front())
	assert.Equal(t, 5, q.Back())
}

func TestQueueReserve(t *testing.T) {
	q := NewQueue[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Push(i))
	}
	q.Pop()
	require.NoError(t, q.Push(4))

	require.NoError(t, q.Reserve(10))
	assert.Equal(t, 10, q.Cap())
	assert.Equal(t, []int{1, 2, 3, 4}, iter_util.Collect(q.Values()))

	// Reserve never shrinks.
	require.NoError(t, q.Reserve(2))
	assert.Equal(t, 10, q.Cap())
}

func TestQueueClearRelease(t *testing.T) {
	bounded := NewBoundedAllocator[*int](16)
	q := NewQueueWith[*int](4, bounded)
	v := 1
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Push(&v))
	}
	q.Pop()
	require.NoError(t, q.Push(&v))

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 4, q.Cap())
	// Both ring segments released their references.
	for i := range q.buf {
		assert.Nil(t, q.buf[i])
	}

	q.Release()
	assert.Equal(t, 0, q.Cap())
	assert.Equal(t, 0, bounded.InUse())
}

func TestQueueClone(t *testing.T) {
	q := NewQueue[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Push(i))
	}
	q.Pop()
	require.NoError(t, q.Push(4))

	dup, err := q.Clone()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, iter_util.Collect(dup.Values()))
	assert.Equal(t, 4, dup.Cap())

	dup.Pop()
	assert.Equal(t, 4, q.Len())
}

func TestQueueTakeFrom(t *testing.T) {
	src := NewQueue[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, src.Push(i))
	}
	src.Pop()
	require.NoError(t, src.Push(4))

	dst := NewQueue[int](0)
	require.NoError(t, dst.TakeFrom(src))
	assert.Equal(t, []int{1, 2, 3, 4}, iter_util.Collect(dst.Values()))
	assert.True(t, src.IsEmpty())
	assert.Equal(t, 0, src.Cap())

	// Relocation path linearizes into the destination's allocator.
	src2 := NewQueue[int](4)
	require.NoError(t, src2.Push(7))
	dst2 := NewQueueWith[int](0, NewBoundedAllocator[int](32))
	require.NoError(t, dst2.TakeFrom(src2))
	assert.Equal(t, []int{7}, iter_util.Collect(dst2.Values()))
	assert.True(t, src2.IsEmpty())
}

func TestQueueSwap(t *testing.T) {
	a := NewQueue[int](4)
	require.NoError(t, a.Push(1))
	b := NewQueue[int](8)
	require.NoError(t, b.Push(2))
	require.NoError(t, b.Push(3))

	a.Swap(b)
	assert.Equal(t, []int{2, 3}, iter_util.Collect(a.Values()))
	assert.Equal(t, []int{1}, iter_util.Collect(b.Values()))
}

func TestQueueIteration(t *testing.T) {
	q := NewQueue[string](4)
	require.NoError(t, q.Push("a"))
	require.NoError(t, q.Push("b"))

	got := map[int]string{}
	for i, v := range q.All() {
		got[i] = v
	}
	assert.Equal(t, map[int]string{0: "a", 1: "b"}, got)
}
