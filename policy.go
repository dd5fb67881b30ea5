package containers

import (
	"fmt"
	"math"
	"reflect"
)

const maxSupportedLoadFactor = 0.95

// GrowthBand ties a growth factor and minimum initial capacity to an element
// byte-size band.
type GrowthBand struct {
	// MaxElemSize is the inclusive upper bound of the band in bytes; 0 marks
	// the unbounded final band.
	MaxElemSize int     `yaml:"max_elem_size"`
	Factor      float64 `yaml:"factor"`
	MinCapacity int     `yaml:"min_capacity"`
}

// Tuning is the full growth/layout profile. Engine builds may override it
// through Config.SetTuning or ship a YAML profile for Config.LoadTuning.
type Tuning struct {
	Bands         []GrowthBand `yaml:"bands"`
	MaxLoadFactor float64      `yaml:"max_load_factor"`
}

// The band table is a long-standing engine heuristic; treat the numbers as
// fixed behavior, not something to re-derive.
func defaultTuning() Tuning {
	return Tuning{
		Bands: []GrowthBand{
			{MaxElemSize: 8, Factor: 2.0, MinCapacity: 16},
			{MaxElemSize: 64, Factor: 1.5, MinCapacity: 8},
			{MaxElemSize: 0, Factor: 1.25, MinCapacity: 4},
		},
		MaxLoadFactor: 0.75,
	}
}

func (t Tuning) validate() error {
	if len(t.Bands) == 0 {
		return InvalidTuningError{Reason: "at least one growth band is required"}
	}
	for i, b := range t.Bands {
		if b.Factor <= 1.0 {
			return InvalidTuningError{Reason: fmt.Sprintf("band %d: growth factor %v must exceed 1.0", i, b.Factor)}
		}
		if b.MinCapacity < 1 {
			return InvalidTuningError{Reason: fmt.Sprintf("band %d: minimum capacity %d must be positive", i, b.MinCapacity)}
		}
	}
	last := t.Bands[len(t.Bands)-1]
	if last.MaxElemSize != 0 {
		return InvalidTuningError{Reason: "final band must be unbounded (max_elem_size 0)"}
	}
	if t.MaxLoadFactor <= 0 || t.MaxLoadFactor > maxSupportedLoadFactor {
		return InvalidTuningError{Reason: fmt.Sprintf("max load factor %v outside (0, %v]", t.MaxLoadFactor, maxSupportedLoadFactor)}
	}
	return nil
}

func bandForSize(size uintptr) GrowthBand {
	bands := Config.tuning.Bands
	for _, b := range bands {
		if b.MaxElemSize == 0 || int(size) <= b.MaxElemSize {
			return b
		}
	}
	return bands[len(bands)-1]
}

func bandFor[T any]() GrowthBand {
	var zero T
	return bandForSize(reflect.TypeOf(&zero).Elem().Size())
}

// grownCapacity returns the next capacity for a buffer of the given current
// capacity that must fit at least needed elements.
func grownCapacity(b GrowthBand, current, needed int) int {
	next := current
	if next < b.MinCapacity {
		next = b.MinCapacity
	}
	for next < needed {
		grown := int(math.Ceil(float64(next) * b.Factor))
		if grown <= next {
			grown = next + 1
		}
		next = grown
	}
	return next
}

// typeHasPointers reports whether T contains pointer-shaped data. This is the
// library's relocatability trait: pointer-free elements can be relocated and
// discarded as raw bytes, while pointer-bearing slots must be zeroed when
// vacated so they do not pin dead objects.
func typeHasPointers[T any]() bool {
	var zero T
	return kindHasPointers(reflect.TypeOf(&zero).Elem())
}

func kindHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && kindHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if kindHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
