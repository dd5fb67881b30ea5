package containers

import (
	"math"

	"github.com/TheBitDrifter/mask"
)

const poolSlots = 64

var (
	_ Allocator[any] = HeapAllocator[any]{}
	_ Allocator[any] = &BoundedAllocator[any]{}
	_ Allocator[any] = &PoolAllocator[any]{}
)

// HeapAllocator delegates to the Go heap. It is stateless, so any two heap
// allocators are interchangeable.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > math.MaxInt32 {
		return nil, CapacityExceededError{Requested: n, Max: math.MaxInt32}
	}
	return make([]T, n), nil
}

func (HeapAllocator[T]) Deallocate(buf []T) {}

func (HeapAllocator[T]) Max() int { return math.MaxInt32 }

func (HeapAllocator[T]) Interchangeable(other Allocator[T]) bool {
	_, ok := other.(HeapAllocator[T])
	return ok
}

func (h HeapAllocator[T]) SelectOnCopy() Allocator[T] { return h }

// BoundedAllocator is a heap allocator with a hard element budget.
// Exhaustion surfaces as OutOfMemoryError, which makes allocation-failure
// paths exercisable deterministically. Buffers must return to the instance
// that issued them so the budget is credited back, hence interchangeability
// is identity.
type BoundedAllocator[T any] struct {
	budget int
	used   int
}

func NewBoundedAllocator[T any](budget int) *BoundedAllocator[T] {
	return &BoundedAllocator[T]{budget: budget}
}

func (b *BoundedAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > b.budget-b.used {
		return nil, OutOfMemoryError{Requested: n}
	}
	b.used += n
	return make([]T, n), nil
}

func (b *BoundedAllocator[T]) Deallocate(buf []T) {
	b.used -= len(buf)
}

func (b *BoundedAllocator[T]) Max() int { return b.budget }

func (b *BoundedAllocator[T]) Interchangeable(other Allocator[T]) bool {
	o, ok := other.(*BoundedAllocator[T])
	return ok && o == b
}

func (b *BoundedAllocator[T]) SelectOnCopy() Allocator[T] { return HeapAllocator[T]{} }

// InUse returns the number of elements currently charged against the budget.
func (b *BoundedAllocator[T]) InUse() int { return b.used }

// PoolAllocator carves a fixed number of equally sized blocks out of one
// slab and hands them to small allocations, falling back to the heap when a
// request is oversized or every slot is taken. Free slots are tracked in a
// bitmask. Pooled buffers must return to their own pool, so
// interchangeability is identity.
type PoolAllocator[T any] struct {
	blockLen int
	slab     []T
	taken    mask.Mask
	fallback HeapAllocator[T]
}

// NewPoolAllocator builds a pool of poolSlots blocks of blockLen elements
// each.
func NewPoolAllocator[T any](blockLen int) *PoolAllocator[T] {
	if blockLen < 1 {
		blockLen = 1
	}
	return &PoolAllocator[T]{
		blockLen: blockLen,
		slab:     make([]T, blockLen*poolSlots),
	}
}

func (p *PoolAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if n <= p.blockLen {
		for i := uint32(0); i < poolSlots; i++ {
			var slot mask.Mask
			slot.Mark(i)
			if p.taken.ContainsAll(slot) {
				continue
			}
			p.taken.Mark(i)
			start := int(i) * p.blockLen
			return p.slab[start : start+n : start+p.blockLen], nil
		}
	}
	return p.fallback.Allocate(n)
}

func (p *PoolAllocator[T]) Deallocate(buf []T) {
	if len(buf) == 0 {
		return
	}
	for i := 0; i < poolSlots; i++ {
		start := i * p.blockLen
		if &buf[0] == &p.slab[start] {
			// Zero the whole block so the next owner sees fresh memory.
			clear(p.slab[start : start+p.blockLen])
			p.taken.Unmark(uint32(i))
			return
		}
	}
	p.fallback.Deallocate(buf)
}

func (p *PoolAllocator[T]) Max() int { return p.fallback.Max() }

func (p *PoolAllocator[T]) Interchangeable(other Allocator[T]) bool {
	o, ok := other.(*PoolAllocator[T])
	return ok && o == p
}

func (p *PoolAllocator[T]) SelectOnCopy() Allocator[T] { return p.fallback }

// FreeSlots counts pool blocks currently available.
func (p *PoolAllocator[T]) FreeSlots() int {
	free := 0
	for i := uint32(0); i < poolSlots; i++ {
		var slot mask.Mask
		slot.Mark(i)
		if !p.taken.ContainsAll(slot) {
			free++
		}
	}
	return free
}
