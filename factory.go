package containers

type factory struct{}

// Factory carries the non-generic constructors; generic constructors live as
// top-level functions (NewArray, NewQueue, NewStack, NewTable,
// FactoryNewCache) since Go methods cannot introduce type parameters.
var Factory factory

// DefaultTuning returns the stock growth/layout profile.
func (f factory) DefaultTuning() Tuning {
	return defaultTuning()
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		items:       NewArray[T](),
		itemIndices: NewTable[string, int](),
		maxCapacity: cap,
	}
}
