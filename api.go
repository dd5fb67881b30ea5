package containers

// Container is the closing-resource contract shared by every container in
// the library. Clear destroys live elements but keeps the buffer; Release
// additionally returns the buffer to the allocator, leaving the container
// empty and allocation-free.
type Container interface {
	Len() int
	Cap() int
	IsEmpty() bool
	Clear()
	Release()
}

// Allocator is the capability every container's ownership base is built on.
// Implementations hand out zeroed element buffers and take them back; pooled
// implementations recycle memory, so Deallocate must leave reclaimed blocks
// zeroed for the next owner.
type Allocator[T any] interface {
	// Allocate returns a zeroed buffer of exactly n elements, or an error
	// (OutOfMemoryError, CapacityExceededError) that the caller propagates.
	Allocate(n int) ([]T, error)

	// Deallocate returns a buffer previously obtained from Allocate. A nil
	// buffer is a no-op.
	Deallocate(buf []T)

	// Max is the largest element count a single Allocate call can represent.
	Max() int

	// Interchangeable reports whether buffers from other can be adopted by
	// owners of this allocator. Gates buffer stealing on move.
	Interchangeable(other Allocator[T]) bool

	// SelectOnCopy picks the allocator a copied container starts with.
	SelectOnCopy() Allocator[T]
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
}

// SimpleCache is a capacity-bounded string registry handing out stable
// 1-based indices. Index 0 is reserved as the invalid index. Backed by the
// hash table for key lookup and the dynamic array for item storage.
type SimpleCache[T any] struct {
	items       *Array[T]
	itemIndices *Table[string, int]
	maxCapacity int
}
