package containers

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBulkInsert(t *testing.T) {
	tbl := NewTable[int, int]()

	for i := 1; i <= 1000; i++ {
		require.NoError(t, tbl.Put(i, i*10))

		// Bucket counts stay powers of two and the load factor never crosses
		// the threshold, even mid-growth.
		require.Equal(t, 1, bits.OnesCount(uint(tbl.BucketCount())))
		require.LessOrEqual(t, tbl.LoadFactor(), tbl.MaxLoadFactor())
	}
	assert.Equal(t, 1000, tbl.Len())
	require.True(t, tbl.probeInvariantHolds())

	for i := 1; i <= 1000; i++ {
		v, ok := tbl.Get(i)
		require.True(t, ok, "key %d", i)
		require.Equal(t, i*10, v)
	}
}

func TestTableGetPutDelete(t *testing.T) {
	tbl := NewTable[string, int]()

	_, ok := tbl.Get("missing")
	assert.False(t, ok)
	assert.False(t, tbl.Contains("missing"))

	require.NoError(t, tbl.Put("a", 1))
	require.NoError(t, tbl.Put("b", 2))
	assert.True(t, tbl.Contains("a"))

	// Re-inserting replaces the value without growing.
	require.NoError(t, tbl.Put("a", 11))
	assert.Equal(t, 2, tbl.Len())
	v, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, 11, v)

	assert.True(t, tbl.Delete("a"))
	assert.False(t, tbl.Contains("a"))
	assert.Equal(t, 1, tbl.Len())

	// Deleting an absent key is an idempotent no-op.
	assert.False(t, tbl.Delete("a"))
	assert.Equal(t, 1, tbl.Len())
}

func TestTableAt(t *testing.T) {
	tbl := NewTable[string, int]()
	require.NoError(t, tbl.Put("hp", 100))

	v, err := tbl.At("hp")
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	_, err = tbl.At("mp")
	var notFound KeyNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "mp", notFound.Key)
}

func TestTableRef(t *testing.T) {
	tbl := NewTable[string, int]()

	// Absent key inserts a zero value.
	p, err := tbl.Ref("counter")
	require.NoError(t, err)
	assert.Equal(t, 0, *p)
	assert.Equal(t, 1, tbl.Len())

	*p = 5
	p2, err := tbl.Ref("counter")
	require.NoError(t, err)
	assert.Equal(t, 5, *p2)
	assert.Equal(t, 1, tbl.Len())
}

func TestTableDeleteBackwardShift(t *testing.T) {
	// A constant hasher funnels every key through one ideal slot, exercising
	// the displacement chain that backward-shift deletion has to repair.
	tbl := NewTableWith[int, int](nil, func(int) uint64 { return 7 })

	const n = 20
	for i := 0; i < n; i++ {
		require.NoError(t, tbl.Put(i, i))
	}
	require.True(t, tbl.probeInvariantHolds())

	for i := 0; i < n; i += 2 {
		require.True(t, tbl.Delete(i))
		require.True(t, tbl.probeInvariantHolds())
	}
	for i := 0; i < n; i++ {
		_, ok := tbl.Get(i)
		assert.Equal(t, i%2 == 1, ok, "key %d", i)
	}
}

func TestTableReserve(t *testing.T) {
	tbl := NewTable[int, int]()
	require.NoError(t, tbl.Reserve(100))

	before := tbl.BucketCount()
	assert.GreaterOrEqual(t, float64(before)*tbl.MaxLoadFactor(), 100.0)

	// 100 inserts fit without another rehash.
	for i := 0; i < 100; i++ {
		require.NoError(t, tbl.Put(i, i))
	}
	assert.Equal(t, before, tbl.BucketCount())

	require.NoError(t, tbl.Reserve(10))
	assert.Equal(t, before, tbl.BucketCount())
}

func TestTableClearRelease(t *testing.T) {
	tbl := NewTable[int, string]()
	require.NoError(t, tbl.Put(1, "one"))
	require.NoError(t, tbl.Put(2, "two"))

	count := tbl.BucketCount()
	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, count, tbl.BucketCount())
	assert.False(t, tbl.Contains(1))

	require.NoError(t, tbl.Put(3, "three"))
	tbl.Release()
	assert.Equal(t, 0, tbl.BucketCount())

	// The table stays usable after release.
	require.NoError(t, tbl.Put(4, "four"))
	v, ok := tbl.Get(4)
	require.True(t, ok)
	assert.Equal(t, "four", v)
}

func TestTableIteration(t *testing.T) {
	tbl := NewTable[string, int]()
	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		require.NoError(t, tbl.Put(k, v))
	}

	got := map[string]int{}
	for k, v := range tbl.All() {
		got[k] = v
	}
	assert.Equal(t, want, got)

	keys := map[string]bool{}
	for k := range tbl.Keys() {
		keys[k] = true
	}
	assert.Len(t, keys, 3)
}

func TestTableClone(t *testing.T) {
	src := NewTable[int, int]()
	for i := 0; i < 64; i++ {
		require.NoError(t, src.Put(i, i*i))
	}

	dup, err := src.Clone()
	require.NoError(t, err)
	assert.Equal(t, src.Len(), dup.Len())
	require.True(t, dup.probeInvariantHolds())
	for i := 0; i < 64; i++ {
		v, ok := dup.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*i, v)
	}

	require.NoError(t, dup.Put(100, 1))
	assert.False(t, src.Contains(100))
}

func TestTableTakeFrom(t *testing.T) {
	src := NewTable[int, int]()
	for i := 0; i < 32; i++ {
		require.NoError(t, src.Put(i, i))
	}

	// Heap-to-heap steals the bucket array along with the hashing state.
	dst := NewTable[int, int]()
	require.NoError(t, dst.TakeFrom(src))
	assert.Equal(t, 32, dst.Len())
	assert.True(t, src.IsEmpty())
	assert.Equal(t, 0, src.BucketCount())
	require.True(t, dst.probeInvariantHolds())
	for i := 0; i < 32; i++ {
		assert.True(t, dst.Contains(i))
	}

	// Non-interchangeable allocators reinsert through the destination's own
	// seed and layout.
	src2 := NewTable[int, int]()
	require.NoError(t, src2.Put(1, 10))
	dst2 := NewTableWith[int, int](NewBoundedAllocator[Bucket[int, int]](64), nil)
	require.NoError(t, dst2.TakeFrom(src2))
	v, ok := dst2.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.True(t, src2.IsEmpty())
	require.True(t, dst2.probeInvariantHolds())
}

func TestTableSwap(t *testing.T) {
	a := NewTable[string, int]()
	require.NoError(t, a.Put("a", 1))
	b := NewTable[string, int]()
	require.NoError(t, b.Put("b", 2))
	require.NoError(t, b.Put("c", 3))

	a.Swap(b)
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Contains("b"))
	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Contains("a"))
	require.True(t, a.probeInvariantHolds())
	require.True(t, b.probeInvariantHolds())
}

func TestTableSetMaxLoadFactor(t *testing.T) {
	tbl := NewTable[int, int]()
	require.NoError(t, tbl.SetMaxLoadFactor(0.5))

	for i := 0; i < 100; i++ {
		require.NoError(t, tbl.Put(i, i))
		require.LessOrEqual(t, tbl.LoadFactor(), 0.5)
	}

	var invalid InvalidTuningError
	require.ErrorAs(t, tbl.SetMaxLoadFactor(0), &invalid)
	require.ErrorAs(t, tbl.SetMaxLoadFactor(0.96), &invalid)
}

func TestTableCustomHasher(t *testing.T) {
	type key struct{ X, Y int }
	hasher := func(k key) uint64 {
		return HashString(fmt.Sprintf("%d:%d", k.X, k.Y))
	}
	tbl := NewTableWith[key, string](nil, hasher)

	require.NoError(t, tbl.Put(key{1, 2}, "a"))
	require.NoError(t, tbl.Put(key{3, 4}, "b"))

	v, ok := tbl.Get(key{1, 2})
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.False(t, tbl.Contains(key{2, 1}))
}

func TestTableStructKeysDefaultHasher(t *testing.T) {
	type vec struct{ X, Y, Z float64 }
	tbl := NewTable[vec, int]()

	for i := 0; i < 100; i++ {
		require.NoError(t, tbl.Put(vec{float64(i), 0, 0}, i))
	}
	assert.Equal(t, 100, tbl.Len())
	for i := 0; i < 100; i++ {
		v, ok := tbl.Get(vec{float64(i), 0, 0})
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestTableStrongGuaranteeOnRehash(t *testing.T) {
	bounded := NewBoundedAllocator[Bucket[int, int]](20)
	tbl := NewTableWith[int, int](bounded, nil)

	for i := 0; i < 12; i++ {
		require.NoError(t, tbl.Put(i, i))
	}

	// The 13th insert crosses 0.75 * 16 and needs 32 fresh buckets while only
	// 4 remain in the budget. The failed insert leaves the table untouched.
	err := tbl.Put(12, 12)
	var oom OutOfMemoryError
	require.ErrorAs(t, err, &oom)
	assert.Equal(t, 12, tbl.Len())
	assert.Equal(t, 16, tbl.BucketCount())
	require.True(t, tbl.probeInvariantHolds())
	for i := 0; i < 12; i++ {
		v, ok := tbl.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestTableSeedsDiffer(t *testing.T) {
	a := NewTable[int, int]()
	b := NewTable[int, int]()
	assert.NotEqual(t, a.seed, b.seed)
}

func TestHashHelpers(t *testing.T) {
	assert.Equal(t, HashString("player"), HashBytes([]byte("player")))
	assert.NotEqual(t, HashString("player"), HashString("Player"))
	assert.NotZero(t, HashString(""))

	// mix64 is a bijection; distinct inputs stay distinct.
	assert.NotEqual(t, mix64(1), mix64(2))
}
