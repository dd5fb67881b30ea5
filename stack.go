package containers

import "iter"

var _ Container = &Stack[int]{}

// Stack is a contiguous owned buffer mutated only at the logical top, plus
// the call-stack-style helpers the engine's algorithms lean on: Dup, SwapTop,
// RotateTop, Drop, and save/restore frames.
type Stack[T any] struct {
	owned[T]
	size   int
	frames []int
}

// NewStack creates an empty stack backed by the heap allocator.
func NewStack[T any]() *Stack[T] {
	return NewStackWith[T](nil)
}

// NewStackWith creates an empty stack owning the given allocator. A nil
// allocator selects the heap.
func NewStackWith[T any](alloc Allocator[T]) *Stack[T] {
	return &Stack[T]{owned: newOwned(alloc)}
}

func (s *Stack[T]) Len() int { return s.size }

func (s *Stack[T]) Cap() int { return s.capacity() }

func (s *Stack[T]) IsEmpty() bool { return s.size == 0 }

// Reserve grows capacity to at least n. Never shrinks.
func (s *Stack[T]) Reserve(n int) error {
	if n <= s.capacity() {
		return nil
	}
	fresh, err := s.alloc.Allocate(n)
	if err != nil {
		return err
	}
	copy(fresh, s.buf[:s.size])
	s.adopt(fresh)
	return nil
}

// Clear destroys all elements and discards every frame marker, keeping the
// buffer.
func (s *Stack[T]) Clear() {
	s.destroyRange(s.buf[:s.size])
	s.size = 0
	s.frames = s.frames[:0]
}

// Release clears the stack and returns its buffer to the allocator.
func (s *Stack[T]) Release() {
	s.Clear()
	s.frames = nil
	s.release()
}

// Push places v on top.
func (s *Stack[T]) Push(v T) error {
	if err := s.ensureLinear(s.size, s.size+1); err != nil {
		return err
	}
	s.buf[s.size] = v
	s.size++
	return nil
}

// Pop removes and returns the top element. Panics when empty.
func (s *Stack[T]) Pop() T {
	v, ok := s.TryPop()
	if !ok {
		panic(EmptyContainerError{Op: "Pop"})
	}
	return v
}

// TryPop removes and returns the top element, reporting false when empty.
func (s *Stack[T]) TryPop() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	s.size--
	v := s.buf[s.size]
	s.destroyRange(s.buf[s.size : s.size+1])
	return v, true
}

// Top returns the top element without removing it. Panics when empty.
func (s *Stack[T]) Top() T {
	if s.size == 0 {
		panic(EmptyContainerError{Op: "Top"})
	}
	return s.buf[s.size-1]
}

// TryTop returns the top element, reporting false when empty.
func (s *Stack[T]) TryTop() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	return s.buf[s.size-1], true
}

// Peek returns the element depth slots below the top; Peek(0) is the top.
// Unchecked: an out-of-range depth panics.
func (s *Stack[T]) Peek(depth int) T {
	if depth < 0 || depth >= s.size {
		panic(OutOfRangeError{Index: depth, Size: s.size})
	}
	return s.buf[s.size-1-depth]
}

// Dup pushes a copy of the top element.
func (s *Stack[T]) Dup() error {
	if s.size == 0 {
		return EmptyContainerError{Op: "Dup"}
	}
	return s.Push(s.buf[s.size-1])
}

// SwapTop exchanges the two topmost elements.
func (s *Stack[T]) SwapTop() error {
	if s.size < 2 {
		return EmptyContainerError{Op: "SwapTop"}
	}
	s.buf[s.size-1], s.buf[s.size-2] = s.buf[s.size-2], s.buf[s.size-1]
	return nil
}

// RotateTop brings the element n slots below the top to the top, rotating
// the n+1 elements above and including it by one position.
func (s *Stack[T]) RotateTop(n int) error {
	if n < 0 || n >= s.size {
		return OutOfRangeError{Index: n, Size: s.size}
	}
	if n == 0 {
		return nil
	}
	window := s.buf[s.size-1-n : s.size]
	bottom := window[0]
	copy(window, window[1:])
	window[len(window)-1] = bottom
	return nil
}

// Drop removes the element depth slots below the top, shifting the elements
// above it down one slot. Drop(0) is equivalent to discarding the top.
func (s *Stack[T]) Drop(depth int) error {
	if depth < 0 || depth >= s.size {
		return OutOfRangeError{Index: depth, Size: s.size}
	}
	i := s.size - 1 - depth
	copy(s.buf[i:], s.buf[i+1:s.size])
	s.size--
	s.destroyRange(s.buf[s.size : s.size+1])
	return nil
}

// PushFrame records the current size as an unwind checkpoint.
func (s *Stack[T]) PushFrame() {
	s.frames = append(s.frames, s.size)
}

// PopFrame unwinds every push made since the matching PushFrame, returning
// the number of elements discarded. Pops that dipped below the checkpoint
// are not compensated; the stack simply stays at its current size.
func (s *Stack[T]) PopFrame() (int, error) {
	if len(s.frames) == 0 {
		return 0, EmptyContainerError{Op: "PopFrame"}
	}
	marker := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if marker > s.size {
		marker = s.size
	}
	dropped := s.size - marker
	s.destroyRange(s.buf[marker:s.size])
	s.size = marker
	return dropped, nil
}

// FrameDepth returns the number of open frames.
func (s *Stack[T]) FrameDepth() int { return len(s.frames) }

// All iterates depth/value pairs from the top down; depth 0 is the top.
func (s *Stack[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.size; i++ {
			if !yield(i, s.buf[s.size-1-i]) {
				return
			}
		}
	}
}

// Values iterates values from the top down.
func (s *Stack[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := s.size - 1; i >= 0; i-- {
			if !yield(s.buf[i]) {
				return
			}
		}
	}
}

// Clone deep-copies the stack, including open frame markers.
func (s *Stack[T]) Clone() (*Stack[T], error) {
	dup := NewStackWith[T](s.alloc.SelectOnCopy())
	if s.size > 0 {
		fresh, err := dup.alloc.Allocate(s.size)
		if err != nil {
			return nil, err
		}
		copy(fresh, s.buf[:s.size])
		dup.buf = fresh
		dup.size = s.size
	}
	if len(s.frames) > 0 {
		dup.frames = append(dup.frames, s.frames...)
	}
	return dup, nil
}

// TakeFrom moves src's contents and frames into s, stealing the buffer when
// the allocators are interchangeable. src is left empty and allocation-free.
func (s *Stack[T]) TakeFrom(src *Stack[T]) error {
	if src == s {
		return nil
	}
	s.Clear()
	if s.stealFrom(&src.owned) {
		s.size = src.size
		s.frames = append(s.frames[:0], src.frames...)
		src.size = 0
		src.frames = src.frames[:0]
		return nil
	}
	if err := s.ensureLinear(0, src.size); err != nil {
		return err
	}
	copy(s.buf, src.buf[:src.size])
	s.size = src.size
	s.frames = append(s.frames[:0], src.frames...)
	src.Clear()
	src.release()
	return nil
}

// Swap exchanges contents, frames, and allocators.
func (s *Stack[T]) Swap(other *Stack[T]) {
	s.owned, other.owned = other.owned, s.owned
	s.size, other.size = other.size, s.size
	s.frames, other.frames = other.frames, s.frames
}
