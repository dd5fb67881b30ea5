package containers

import "iter"

var _ Container = &Queue[int]{}

// Queue is a strict-FIFO ring buffer: O(1) push-back and pop-front without
// the shifting a plain array would need. Indices wrap modulo capacity;
// pushing into a full ring reallocates and linearizes the live range back to
// physical index 0.
type Queue[T any] struct {
	owned[T]
	front int
	size  int
	// initial is the caller-requested capacity, honored exactly on the first
	// allocation so bounded-queue callers get the ring size they asked for.
	initial int
}

// NewQueue creates an empty queue that will allocate a ring of the given
// capacity on first use. A non-positive capacity defers to the growth
// policy's minimum.
func NewQueue[T any](capacity int) *Queue[T] {
	return NewQueueWith[T](capacity, nil)
}

// NewQueueWith creates an empty queue owning the given allocator. A nil
// allocator selects the heap.
func NewQueueWith[T any](capacity int, alloc Allocator[T]) *Queue[T] {
	q := &Queue[T]{owned: newOwned(alloc)}
	if capacity > 0 {
		q.initial = capacity
	}
	return q
}

func (q *Queue[T]) Len() int { return q.size }

func (q *Queue[T]) Cap() int { return q.capacity() }

func (q *Queue[T]) IsEmpty() bool { return q.size == 0 }

// physical maps the i-th logical element from the front to its slot.
func (q *Queue[T]) physical(i int) int {
	return (q.front + i) % len(q.buf)
}

// Push appends v at the back, growing and linearizing when the ring is full.
func (q *Queue[T]) Push(v T) error {
	if q.size == q.capacity() {
		if err := q.grow(q.size + 1); err != nil {
			return err
		}
	}
	q.buf[q.physical(q.size)] = v
	q.size++
	return nil
}

// TryPush appends only when a slot is free, reporting false on a full ring.
// It never allocates, so an unallocated queue always reports false.
func (q *Queue[T]) TryPush(v T) bool {
	if q.size == q.capacity() {
		return false
	}
	q.buf[q.physical(q.size)] = v
	q.size++
	return true
}

// Pop removes and returns the front element. Panics when empty.
func (q *Queue[T]) Pop() T {
	v, ok := q.TryPop()
	if !ok {
		panic(EmptyContainerError{Op: "Pop"})
	}
	return v
}

// TryPop removes and returns the front element, reporting false when empty.
func (q *Queue[T]) TryPop() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	v := q.buf[q.front]
	q.destroyRange(q.buf[q.front : q.front+1])
	q.front = (q.front + 1) % len(q.buf)
	q.size--
	if q.size == 0 {
		q.front = 0
	}
	return v, true
}

// Front returns the oldest element without removing it. Panics when empty.
func (q *Queue[T]) Front() T {
	if q.size == 0 {
		panic(EmptyContainerError{Op: "Front"})
	}
	return q.buf[q.front]
}

// Back returns the newest element without removing it. Panics when empty.
func (q *Queue[T]) Back() T {
	if q.size == 0 {
		panic(EmptyContainerError{Op: "Back"})
	}
	return q.buf[q.physical(q.size-1)]
}

// Peek returns the i-th logical element from the front. Unchecked: an
// out-of-range index panics.
func (q *Queue[T]) Peek(i int) T {
	if i < 0 || i >= q.size {
		panic(OutOfRangeError{Index: i, Size: q.size})
	}
	return q.buf[q.physical(i)]
}

// At is the checked accessor for the i-th logical element.
func (q *Queue[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= q.size {
		return zero, OutOfRangeError{Index: i, Size: q.size}
	}
	return q.buf[q.physical(i)], nil
}

// Reserve grows the ring to hold at least n elements, linearizing live
// elements to the front. Never shrinks.
func (q *Queue[T]) Reserve(n int) error {
	if n <= q.capacity() {
		return nil
	}
	fresh, err := q.alloc.Allocate(n)
	if err != nil {
		return err
	}
	q.copyOut(fresh)
	q.adopt(fresh)
	q.front = 0
	return nil
}

// Clear destroys all elements, keeping the ring.
func (q *Queue[T]) Clear() {
	if q.size > 0 && q.zeroOnFree {
		end := q.front + q.size
		if end <= len(q.buf) {
			clear(q.buf[q.front:end])
		} else {
			clear(q.buf[q.front:])
			clear(q.buf[:end-len(q.buf)])
		}
	}
	q.front = 0
	q.size = 0
}

// Release clears the queue and returns its ring to the allocator.
func (q *Queue[T]) Release() {
	q.Clear()
	q.release()
}

// All iterates logical-index/value pairs in FIFO order.
func (q *Queue[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < q.size; i++ {
			if !yield(i, q.buf[q.physical(i)]) {
				return
			}
		}
	}
}

// Values iterates values in FIFO order.
func (q *Queue[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.size; i++ {
			if !yield(q.buf[q.physical(i)]) {
				return
			}
		}
	}
}

// Clone deep-copies the queue. The clone is linearized and its ring matches
// the source's live size.
func (q *Queue[T]) Clone() (*Queue[T], error) {
	dup := NewQueueWith[T](q.initial, q.alloc.SelectOnCopy())
	if q.size > 0 {
		fresh, err := dup.alloc.Allocate(q.size)
		if err != nil {
			return nil, err
		}
		q.copyOut(fresh)
		dup.buf = fresh
		dup.size = q.size
	}
	return dup, nil
}

// TakeFrom moves src's contents into q, stealing the ring when the
// allocators are interchangeable and relocating (linearized) otherwise. src
// is left empty and allocation-free.
func (q *Queue[T]) TakeFrom(src *Queue[T]) error {
	if src == q {
		return nil
	}
	q.Clear()
	if q.stealFrom(&src.owned) {
		q.front = src.front
		q.size = src.size
		src.front = 0
		src.size = 0
		return nil
	}
	if err := q.Reserve(src.size); err != nil {
		return err
	}
	src.copyOut(q.buf)
	q.front = 0
	q.size = src.size
	src.Clear()
	src.release()
	return nil
}

// Swap exchanges contents and allocators.
func (q *Queue[T]) Swap(other *Queue[T]) {
	q.owned, other.owned = other.owned, q.owned
	q.front, other.front = other.front, q.front
	q.size, other.size = other.size, q.size
	q.initial, other.initial = other.initial, q.initial
}

// grow reallocates the ring for at least needed elements. The first
// allocation honors the requested initial capacity exactly; later growth
// follows the policy bands. Live elements land linearized at index 0.
func (q *Queue[T]) grow(needed int) error {
	var n int
	if q.buf == nil && q.initial >= needed {
		n = q.initial
	} else {
		n = grownCapacity(bandFor[T](), len(q.buf), needed)
	}
	fresh, err := q.alloc.Allocate(n)
	if err != nil {
		return err
	}
	q.copyOut(fresh)
	q.adopt(fresh)
	q.front = 0
	return nil
}

// copyOut linearizes live elements into dst starting at index 0, copying two
// segments when the live range crosses the ring's end.
func (q *Queue[T]) copyOut(dst []T) {
	if q.size == 0 {
		return
	}
	end := q.front + q.size
	if end <= len(q.buf) {
		copy(dst, q.buf[q.front:end])
		return
	}
	n := copy(dst, q.buf[q.front:])
	copy(dst[n:], q.buf[:end-len(q.buf)])
}
