package containers

import "iter"

var _ Container = &Array[int]{}

// Array is a contiguous owned buffer with amortized O(1) append, O(1)
// indexed access, and O(n) insert/erase at arbitrary positions.
//
// Any operation that reallocates or shifts elements invalidates outstanding
// pointers obtained through Ref.
type Array[T any] struct {
	owned[T]
	size int
}

// NewArray creates an empty array backed by the heap allocator. No buffer is
// allocated until the first element arrives.
func NewArray[T any]() *Array[T] {
	return NewArrayWith[T](nil)
}

// NewArrayWith creates an empty array owning the given allocator. A nil
// allocator selects the heap.
func NewArrayWith[T any](alloc Allocator[T]) *Array[T] {
	return &Array[T]{owned: newOwned(alloc)}
}

// NewArrayFrom creates an array holding the given values in order.
func NewArrayFrom[T any](vals ...T) (*Array[T], error) {
	arr := NewArray[T]()
	if err := arr.Append(vals...); err != nil {
		return nil, err
	}
	return arr, nil
}

func (a *Array[T]) Len() int { return a.size }

func (a *Array[T]) Cap() int { return a.capacity() }

func (a *Array[T]) IsEmpty() bool { return a.size == 0 }

// Reserve grows capacity to at least n. A no-op when n <= Cap; Reserve never
// shrinks.
func (a *Array[T]) Reserve(n int) error {
	if n <= a.capacity() {
		return nil
	}
	fresh, err := a.alloc.Allocate(n)
	if err != nil {
		return err
	}
	copy(fresh, a.buf[:a.size])
	a.adopt(fresh)
	return nil
}

// ShrinkToFit reduces capacity to match size, releasing the buffer entirely
// when the array is empty.
func (a *Array[T]) ShrinkToFit() error {
	if a.size == a.capacity() {
		return nil
	}
	if a.size == 0 {
		a.release()
		return nil
	}
	fresh, err := a.alloc.Allocate(a.size)
	if err != nil {
		return err
	}
	copy(fresh, a.buf[:a.size])
	a.adopt(fresh)
	return nil
}

// Clear destroys all elements but keeps the buffer for reuse.
func (a *Array[T]) Clear() {
	a.destroyRange(a.buf[:a.size])
	a.size = 0
}

// Release clears the array and returns its buffer to the allocator.
func (a *Array[T]) Release() {
	a.Clear()
	a.release()
}

// Get returns the element at i. Unchecked: an out-of-range index is a
// contract violation and panics.
func (a *Array[T]) Get(i int) T {
	if i < 0 || i >= a.size {
		panic(OutOfRangeError{Index: i, Size: a.size})
	}
	return a.buf[i]
}

// Set overwrites the element at i. Unchecked, like Get.
func (a *Array[T]) Set(i int, v T) {
	if i < 0 || i >= a.size {
		panic(OutOfRangeError{Index: i, Size: a.size})
	}
	a.buf[i] = v
}

// Ref returns a pointer to the element at i, valid until the next
// reallocation or shift. Unchecked, like Get.
func (a *Array[T]) Ref(i int) *T {
	if i < 0 || i >= a.size {
		panic(OutOfRangeError{Index: i, Size: a.size})
	}
	return &a.buf[i]
}

// At is the checked accessor.
func (a *Array[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= a.size {
		return zero, OutOfRangeError{Index: i, Size: a.size}
	}
	return a.buf[i], nil
}

// Push appends a single element.
func (a *Array[T]) Push(v T) error {
	return a.Append(v)
}

// Append appends vals in order, growing at most once.
func (a *Array[T]) Append(vals ...T) error {
	if err := a.ensureLinear(a.size, a.size+len(vals)); err != nil {
		return err
	}
	copy(a.buf[a.size:], vals)
	a.size += len(vals)
	return nil
}

// TryPush appends a single element, reporting false when the allocator
// cannot grow the buffer.
func (a *Array[T]) TryPush(v T) bool {
	return a.Append(v) == nil
}

// Pop removes and returns the last element. Panics when empty.
func (a *Array[T]) Pop() T {
	v, ok := a.TryPop()
	if !ok {
		panic(EmptyContainerError{Op: "Pop"})
	}
	return v
}

// TryPop removes and returns the last element, reporting false when empty.
func (a *Array[T]) TryPop() (T, bool) {
	var zero T
	if a.size == 0 {
		return zero, false
	}
	a.size--
	v := a.buf[a.size]
	a.destroyRange(a.buf[a.size : a.size+1])
	return v, true
}

// Insert places vals before index i, shifting the tail right. When growth is
// required, the prefix, the new elements, and the suffix are relocated into
// the fresh buffer in one pass rather than shifted twice.
func (a *Array[T]) Insert(i int, vals ...T) error {
	if i < 0 || i > a.size {
		return OutOfRangeError{Index: i, Size: a.size}
	}
	n := len(vals)
	if n == 0 {
		return nil
	}
	if a.size+n > a.capacity() {
		fresh, err := a.grownBuffer(a.size + n)
		if err != nil {
			return err
		}
		copy(fresh, a.buf[:i])
		copy(fresh[i:], vals)
		copy(fresh[i+n:], a.buf[i:a.size])
		a.adopt(fresh)
	} else {
		copy(a.buf[i+n:a.size+n], a.buf[i:a.size])
		copy(a.buf[i:], vals)
	}
	a.size += n
	return nil
}

// Erase removes the element at i.
func (a *Array[T]) Erase(i int) error {
	return a.EraseRange(i, 1)
}

// EraseRange removes n elements starting at i, relocating the suffix left to
// close the gap. Capacity is unchanged.
func (a *Array[T]) EraseRange(i, n int) error {
	if n < 0 || i < 0 || i+n > a.size {
		return OutOfRangeError{Index: i + n, Size: a.size}
	}
	if n == 0 {
		return nil
	}
	copy(a.buf[i:], a.buf[i+n:a.size])
	a.destroyRange(a.buf[a.size-n : a.size])
	a.size -= n
	return nil
}

// All iterates index/value pairs front to back. Mutating the array during
// iteration invalidates the sequence.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(i, a.buf[i]) {
				return
			}
		}
	}
}

// Values iterates values front to back.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(a.buf[i]) {
				return
			}
		}
	}
}

// Clone deep-copies the array. The copy's allocator follows the source
// allocator's select-on-copy policy, and its capacity matches the source
// size.
func (a *Array[T]) Clone() (*Array[T], error) {
	dup := NewArrayWith[T](a.alloc.SelectOnCopy())
	if a.size > 0 {
		fresh, err := dup.alloc.Allocate(a.size)
		if err != nil {
			return nil, err
		}
		copy(fresh, a.buf[:a.size])
		dup.buf = fresh
		dup.size = a.size
	}
	return dup, nil
}

// TakeFrom moves src's contents into a, stealing the buffer outright when
// the allocators are interchangeable and relocating element-wise otherwise.
// src is left empty and allocation-free either way.
func (a *Array[T]) TakeFrom(src *Array[T]) error {
	if src == a {
		return nil
	}
	a.Clear()
	if a.stealFrom(&src.owned) {
		a.size = src.size
		src.size = 0
		return nil
	}
	if err := a.ensureLinear(0, src.size); err != nil {
		return err
	}
	copy(a.buf, src.buf[:src.size])
	a.size = src.size
	src.Clear()
	src.release()
	return nil
}

// Swap exchanges contents and allocators.
func (a *Array[T]) Swap(other *Array[T]) {
	a.owned, other.owned = other.owned, a.owned
	a.size, other.size = other.size, a.size
}
