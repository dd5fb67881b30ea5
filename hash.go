package containers

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps keys to 64-bit hash values.
type Hasher[K any] func(K) uint64

// HashString is the engine-wide string hash fast path.
func HashString(s string) uint64 { return xxhash.Sum64String(s) }

// HashBytes hashes a raw byte slice.
func HashBytes(b []byte) uint64 { return xxhash.Sum64(b) }

// mix64 is the splitmix64 finalizer, used to spread integer keys and fold
// per-table seeds.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

var seedCounter uint64

// nextSeed hands each table its own hash seed so physical layouts differ
// between instances even for identical key sets.
func nextSeed() uint64 {
	seedCounter++
	return mix64(seedCounter ^ 0x9e3779b97f4a7c15)
}

// defaultHasher picks a hash for K's kind: strings go through xxhash,
// integers through the bit mixer, and everything else through its printed
// form. Engine code with hotter needs supplies its own Hasher.
func defaultHasher[K comparable]() Hasher[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint64 { return xxhash.Sum64String(any(k).(string)) }
	case int:
		return func(k K) uint64 { return mix64(uint64(any(k).(int))) }
	case int8:
		return func(k K) uint64 { return mix64(uint64(any(k).(int8))) }
	case int16:
		return func(k K) uint64 { return mix64(uint64(any(k).(int16))) }
	case int32:
		return func(k K) uint64 { return mix64(uint64(any(k).(int32))) }
	case int64:
		return func(k K) uint64 { return mix64(uint64(any(k).(int64))) }
	case uint:
		return func(k K) uint64 { return mix64(uint64(any(k).(uint))) }
	case uint8:
		return func(k K) uint64 { return mix64(uint64(any(k).(uint8))) }
	case uint16:
		return func(k K) uint64 { return mix64(uint64(any(k).(uint16))) }
	case uint32:
		return func(k K) uint64 { return mix64(uint64(any(k).(uint32))) }
	case uint64:
		return func(k K) uint64 { return mix64(any(k).(uint64)) }
	case uintptr:
		return func(k K) uint64 { return mix64(uint64(any(k).(uintptr))) }
	case float32:
		return func(k K) uint64 { return mix64(uint64(math.Float32bits(any(k).(float32)))) }
	case float64:
		return func(k K) uint64 { return mix64(math.Float64bits(any(k).(float64))) }
	case bool:
		return func(k K) uint64 {
			if any(k).(bool) {
				return mix64(1)
			}
			return mix64(0)
		}
	}
	if t := reflect.TypeOf(zero); t != nil {
		// Named types with hashable underlying kinds.
		switch t.Kind() {
		case reflect.String:
			return func(k K) uint64 { return xxhash.Sum64String(reflect.ValueOf(k).String()) }
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return func(k K) uint64 { return mix64(uint64(reflect.ValueOf(k).Int())) }
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return func(k K) uint64 { return mix64(reflect.ValueOf(k).Uint()) }
		}
	}
	return func(k K) uint64 {
		d := xxhash.New()
		fmt.Fprintf(d, "%v", k)
		return d.Sum64()
	}
}
