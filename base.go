package containers

// owned is the ownership base shared by every container: exactly one
// allocator-provided buffer, sized in elements, freed on release or swapped
// out on reallocation. It mediates allocation, destruction, and
// allocator-propagation concerns so the containers do not duplicate them.
type owned[T any] struct {
	alloc Allocator[T]
	buf   []T
	// zeroOnFree marks pointer-bearing element types, whose vacated slots
	// must be zeroed so they do not pin dead objects.
	zeroOnFree bool
}

func newOwned[T any](alloc Allocator[T]) owned[T] {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	return owned[T]{alloc: alloc, zeroOnFree: typeHasPointers[T]()}
}

func (o *owned[T]) capacity() int { return len(o.buf) }

// grownBuffer allocates a policy-sized buffer fitting at least needed
// elements. The current buffer is untouched; callers relocate live elements
// into the fresh buffer and then adopt it, which keeps the container intact
// if allocation fails.
func (o *owned[T]) grownBuffer(needed int) ([]T, error) {
	return o.alloc.Allocate(grownCapacity(bandFor[T](), len(o.buf), needed))
}

// adopt installs fresh as the owned buffer and returns the old one to the
// allocator. Live elements must already have been relocated out.
func (o *owned[T]) adopt(fresh []T) {
	old := o.buf
	o.buf = fresh
	if old != nil {
		if o.zeroOnFree {
			clear(old)
		}
		o.alloc.Deallocate(old)
	}
}

// release frees the owned buffer, leaving the base allocation-free.
func (o *owned[T]) release() {
	o.adopt(nil)
}

// destroyRange discards live elements in s. Pointer-free element types skip
// the pass entirely.
func (o *owned[T]) destroyRange(s []T) {
	if o.zeroOnFree {
		clear(s)
	}
}

// ensureLinear grows the buffer while keeping the first size elements in
// place at the front. No-op when needed fits the current capacity.
func (o *owned[T]) ensureLinear(size, needed int) error {
	if needed <= len(o.buf) {
		return nil
	}
	fresh, err := o.grownBuffer(needed)
	if err != nil {
		return err
	}
	copy(fresh, o.buf[:size])
	o.adopt(fresh)
	return nil
}

// stealFrom transfers buffer ownership from src when the two allocators are
// interchangeable. Returns false when the caller must fall back to an
// element-wise relocate with its own allocator.
func (o *owned[T]) stealFrom(src *owned[T]) bool {
	if !o.alloc.Interchangeable(src.alloc) {
		return false
	}
	o.adopt(src.buf)
	src.buf = nil
	return true
}
