package containers

var _ Cache[any] = &SimpleCache[any]{}

// Indices handed out by Register are 1-based; 0 is never issued and serves as
// the invalid index. Slot i of the backing array holds the item at index i+1.

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	return c.itemIndices.Get(key)
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return c.items.Ref(index - 1)
}

func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	return c.items.Ref(int(index) - 1)
}

// Register stores item under key and returns its index. Registering an
// existing key overwrites the item in place, keeping its index stable.
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if idx, ok := c.itemIndices.Get(key); ok {
		*c.items.Ref(idx - 1) = item
		return idx, nil
	}
	if c.itemIndices.Len() >= c.maxCapacity {
		return -1, CapacityExceededError{Requested: c.itemIndices.Len() + 1, Max: c.maxCapacity}
	}
	idx := c.items.Len() + 1
	if err := c.items.Push(item); err != nil {
		return -1, err
	}
	if err := c.itemIndices.Put(key, idx); err != nil {
		c.items.TryPop()
		return -1, err
	}
	return idx, nil
}

func (c *SimpleCache[T]) Clear() {
	c.items.Clear()
	c.itemIndices.Clear()
}
