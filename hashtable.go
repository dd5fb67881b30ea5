package containers

import "iter"

const (
	// maxProbeDistance bounds how far any occupied bucket may sit from its
	// ideal slot. Exceeding it during insertion signals pathological
	// clustering and forces an immediate rehash instead of an unbounded walk.
	maxProbeDistance = 255

	minBucketCount = 16
)

var _ Container = &Table[int, int]{}

// Bucket is one open-addressing slot: either empty or an occupied key/value
// pair carrying its displacement from the ideal slot. The zero value is the
// empty state, so freshly allocated bucket arrays are valid tables.
type Bucket[K comparable, V any] struct {
	key      K
	value    V
	dist     uint16
	occupied bool
}

// Table is an open-addressing hash map using Robin-Hood displacement on
// insert and backward-shift deletion, which keeps probe distances minimal
// without tombstones. Average O(1) insert/find/erase with low variance
// versus naive linear probing. Bucket counts are always powers of two.
type Table[K comparable, V any] struct {
	owned[Bucket[K, V]]
	size    int
	hasher  Hasher[K]
	seed    uint64
	maxLoad float64
}

// NewTable creates an empty table with the default hasher for K and the
// configured max load factor. No buckets are allocated until the first
// insert.
func NewTable[K comparable, V any]() *Table[K, V] {
	return NewTableWith[K, V](nil, nil)
}

// NewTableWith creates an empty table owning the given allocator and
// hasher. Nil arguments select the heap allocator and the default hasher.
func NewTableWith[K comparable, V any](alloc Allocator[Bucket[K, V]], hasher Hasher[K]) *Table[K, V] {
	if hasher == nil {
		hasher = defaultHasher[K]()
	}
	return &Table[K, V]{
		owned:   newOwned(alloc),
		hasher:  hasher,
		seed:    nextSeed(),
		maxLoad: Config.tuning.MaxLoadFactor,
	}
}

func (t *Table[K, V]) Len() int { return t.size }

// Cap reports the bucket count, mirroring BucketCount for the Container
// contract.
func (t *Table[K, V]) Cap() int { return len(t.buf) }

func (t *Table[K, V]) IsEmpty() bool { return t.size == 0 }

func (t *Table[K, V]) BucketCount() int { return len(t.buf) }

func (t *Table[K, V]) LoadFactor() float64 {
	if len(t.buf) == 0 {
		return 0
	}
	return float64(t.size) / float64(len(t.buf))
}

func (t *Table[K, V]) MaxLoadFactor() float64 { return t.maxLoad }

// SetMaxLoadFactor adjusts the resize threshold. Takes effect on the next
// insert.
func (t *Table[K, V]) SetMaxLoadFactor(f float64) error {
	if f <= 0 || f > maxSupportedLoadFactor {
		return InvalidTuningError{Reason: "max load factor outside (0, 0.95]"}
	}
	t.maxLoad = f
	return nil
}

func (t *Table[K, V]) hash(k K) uint64 {
	return mix64(t.hasher(k) ^ t.seed)
}

func (t *Table[K, V]) ideal(h uint64) int {
	return int(h & uint64(len(t.buf)-1))
}

// Get returns the value stored for key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	var zero V
	i, ok := t.lookup(key)
	if !ok {
		return zero, false
	}
	return t.buf[i].value, true
}

// At is the checked accessor, signaling KeyNotFoundError for absent keys.
func (t *Table[K, V]) At(key K) (V, error) {
	var zero V
	i, ok := t.lookup(key)
	if !ok {
		return zero, KeyNotFoundError{Key: key}
	}
	return t.buf[i].value, nil
}

func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.lookup(key)
	return ok
}

// Put inserts key/value, replacing the value when key is already present.
func (t *Table[K, V]) Put(key K, value V) error {
	if err := t.ensureSpace(1); err != nil {
		return err
	}
	for {
		res, i := t.probe(key)
		switch res {
		case probeReplace:
			t.buf[i].value = value
			return nil
		case probeInsert:
			placeInto(t.buf, t.ideal(t.hash(key)), Bucket[K, V]{key: key, value: value, occupied: true})
			t.size++
			return nil
		case probeRebuild:
			if err := t.rehash(len(t.buf) * 2); err != nil {
				return err
			}
		}
	}
}

// Ref returns a pointer to the value for key, inserting a zero value first
// when the key is absent. The pointer is invalidated by the next mutation of
// the table.
func (t *Table[K, V]) Ref(key K) (*V, error) {
	if err := t.ensureSpace(1); err != nil {
		return nil, err
	}
	for {
		res, i := t.probe(key)
		switch res {
		case probeReplace:
			return &t.buf[i].value, nil
		case probeInsert:
			placeInto(t.buf, t.ideal(t.hash(key)), Bucket[K, V]{key: key, occupied: true})
			t.size++
			j, _ := t.lookup(key)
			return &t.buf[j].value, nil
		case probeRebuild:
			if err := t.rehash(len(t.buf) * 2); err != nil {
				return nil, err
			}
		}
	}
}

// Delete removes key, pulling displaced successors backward into the gap so
// no tombstone is needed. Reports whether a key was removed; deleting an
// absent key is a no-op.
func (t *Table[K, V]) Delete(key K) bool {
	i, ok := t.lookup(key)
	if !ok {
		return false
	}
	mask := len(t.buf) - 1
	for {
		next := (i + 1) & mask
		nb := &t.buf[next]
		if !nb.occupied || nb.dist == 0 {
			break
		}
		t.buf[i] = *nb
		t.buf[i].dist--
		i = next
	}
	t.buf[i] = Bucket[K, V]{}
	t.size--
	return true
}

// Reserve grows the bucket array so that n entries fit without crossing the
// max load factor. Never shrinks.
func (t *Table[K, V]) Reserve(n int) error {
	if n <= 0 {
		return nil
	}
	count := bucketCountFor(n, t.maxLoad)
	if count <= len(t.buf) {
		return nil
	}
	return t.rehash(count)
}

// Clear destroys every entry, keeping the bucket array.
func (t *Table[K, V]) Clear() {
	// Occupied flags live in the buffer, so clearing cannot be skipped for
	// pointer-free types.
	clear(t.buf)
	t.size = 0
}

// Release clears the table and returns the bucket array to the allocator.
func (t *Table[K, V]) Release() {
	t.Clear()
	t.release()
}

// All iterates key/value pairs in physical bucket order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range t.buf {
			if t.buf[i].occupied && !yield(t.buf[i].key, t.buf[i].value) {
				return
			}
		}
	}
}

// Keys iterates keys in physical bucket order.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range t.buf {
			if t.buf[i].occupied && !yield(t.buf[i].key) {
				return
			}
		}
	}
}

// Clone deep-copies the table. Hasher and seed carry over, so the clone's
// physical layout matches the source and the bucket array can be copied
// wholesale.
func (t *Table[K, V]) Clone() (*Table[K, V], error) {
	dup := &Table[K, V]{
		owned:   newOwned(t.alloc.SelectOnCopy()),
		hasher:  t.hasher,
		seed:    t.seed,
		maxLoad: t.maxLoad,
	}
	if len(t.buf) > 0 {
		fresh, err := dup.alloc.Allocate(len(t.buf))
		if err != nil {
			return nil, err
		}
		copy(fresh, t.buf)
		dup.buf = fresh
		dup.size = t.size
	}
	return dup, nil
}

// TakeFrom moves src's contents into t, stealing the bucket array (along
// with src's hasher and seed) when the allocators are interchangeable, and
// reinserting through t's own layout otherwise. src is left empty and
// allocation-free.
func (t *Table[K, V]) TakeFrom(src *Table[K, V]) error {
	if src == t {
		return nil
	}
	t.Clear()
	if t.stealFrom(&src.owned) {
		t.size = src.size
		t.hasher = src.hasher
		t.seed = src.seed
		t.maxLoad = src.maxLoad
		src.size = 0
		return nil
	}
	if err := t.Reserve(src.size); err != nil {
		return err
	}
	for i := range src.buf {
		if src.buf[i].occupied {
			if err := t.Put(src.buf[i].key, src.buf[i].value); err != nil {
				return err
			}
		}
	}
	src.Clear()
	src.release()
	return nil
}

// Swap exchanges contents, hashing state, and allocators.
func (t *Table[K, V]) Swap(other *Table[K, V]) {
	t.owned, other.owned = other.owned, t.owned
	t.size, other.size = other.size, t.size
	t.hasher, other.hasher = other.hasher, t.hasher
	t.seed, other.seed = other.seed, t.seed
	t.maxLoad, other.maxLoad = other.maxLoad, t.maxLoad
}

type probeResult int

const (
	probeInsert probeResult = iota
	probeReplace
	probeRebuild
)

// probe simulates the Robin-Hood walk for key without mutating. It reports
// either the index of an existing match, that a fresh insert will complete
// within the probe bound, or that the bound would be exceeded and the table
// must rebuild first. Running the simulation up front is what preserves the
// strong guarantee: the mutating pass below never starts unless it can
// finish.
func (t *Table[K, V]) probe(key K) (probeResult, int) {
	mask := len(t.buf) - 1
	i := t.ideal(t.hash(key))
	d := 0
	matchable := true
	for {
		b := &t.buf[i]
		if !b.occupied {
			return probeInsert, i
		}
		if matchable && b.key == key {
			return probeReplace, i
		}
		if d > int(b.dist) {
			// The walk would displace this resident here; from this point the
			// carried element is a unique existing entry, never the new key.
			d = int(b.dist)
			matchable = false
		}
		if d >= maxProbeDistance {
			return probeRebuild, 0
		}
		d++
		i = (i + 1) & mask
	}
}

// lookup probes forward from the ideal slot, stopping at an empty bucket, a
// key match, a resident closer to home than the probe has walked, or the
// probe bound.
func (t *Table[K, V]) lookup(key K) (int, bool) {
	if t.size == 0 {
		return 0, false
	}
	mask := len(t.buf) - 1
	i := t.ideal(t.hash(key))
	for d := 0; d <= maxProbeDistance; d++ {
		b := &t.buf[i]
		if !b.occupied || d > int(b.dist) {
			return 0, false
		}
		if b.key == key {
			return i, true
		}
		i = (i + 1) & mask
	}
	return 0, false
}

// ensureSpace rehashes ahead of an insert that would cross the max load
// factor, doubling so the threshold is never exceeded.
func (t *Table[K, V]) ensureSpace(extra int) error {
	if len(t.buf) == 0 {
		return t.rehash(bucketCountFor(extra, t.maxLoad))
	}
	if float64(t.size+extra) > t.maxLoad*float64(len(t.buf)) {
		n := len(t.buf) * 2
		for float64(t.size+extra) > t.maxLoad*float64(n) {
			n *= 2
		}
		return t.rehash(n)
	}
	return nil
}

// bucketCountFor returns the smallest power-of-two bucket count holding n
// entries under the given load factor.
func bucketCountFor(n int, maxLoad float64) int {
	count := minBucketCount
	for float64(n) > maxLoad*float64(count) {
		count *= 2
	}
	return count
}

// rehash reinserts every live entry into a bucket array of at least n slots,
// doubling further in the rare case the probe bound cannot be met. The old
// array is untouched until the new one is fully populated.
func (t *Table[K, V]) rehash(n int) error {
	for {
		fresh, err := t.alloc.Allocate(n)
		if err != nil {
			return err
		}
		if t.reinsert(fresh) {
			t.adopt(fresh)
			return nil
		}
		t.alloc.Deallocate(fresh)
		n *= 2
	}
}

func (t *Table[K, V]) reinsert(fresh []Bucket[K, V]) bool {
	mask := uint64(len(fresh) - 1)
	for i := range t.buf {
		b := t.buf[i]
		if !b.occupied {
			continue
		}
		b.dist = 0
		if !placeInto(fresh, int(t.hash(b.key)&mask), b) {
			return false
		}
	}
	return true
}

// placeInto runs the mutating Robin-Hood walk: whenever the carried
// element's displacement exceeds the resident's, the two swap and the
// displaced resident is carried onward. Returns false when the probe bound
// is hit; callers either verified via probe that this cannot happen or are
// filling a disposable fresh array.
func placeInto[K comparable, V any](buckets []Bucket[K, V], ideal int, b Bucket[K, V]) bool {
	mask := len(buckets) - 1
	i := ideal
	b.dist = 0
	for {
		slot := &buckets[i]
		if !slot.occupied {
			*slot = b
			return true
		}
		if b.dist > slot.dist {
			b, *slot = *slot, b
		}
		if b.dist == maxProbeDistance {
			return false
		}
		b.dist++
		i = (i + 1) & mask
	}
}

// probeInvariantHolds verifies that every occupied bucket's recorded
// displacement matches its actual distance from the ideal slot and stays
// within the bound. Test hook.
func (t *Table[K, V]) probeInvariantHolds() bool {
	if len(t.buf) == 0 {
		return true
	}
	mask := len(t.buf) - 1
	for i := range t.buf {
		b := &t.buf[i]
		if !b.occupied {
			continue
		}
		actual := (i - t.ideal(t.hash(b.key)) + len(t.buf)) & mask
		if actual != int(b.dist) || actual > maxProbeDistance {
			return false
		}
	}
	return true
}
