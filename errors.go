package containers

import "fmt"

type OutOfRangeError struct {
	Index int
	Size  int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for size %d", e.Index, e.Size)
}

type KeyNotFoundError struct {
	Key any
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %v", e.Key)
}

type EmptyContainerError struct {
	Op string
}

func (e EmptyContainerError) Error() string {
	return fmt.Sprintf("%s requires a non-empty container", e.Op)
}

type OutOfMemoryError struct {
	Requested int
}

func (e OutOfMemoryError) Error() string {
	return fmt.Sprintf("allocator exhausted: cannot provide %d elements", e.Requested)
}

type CapacityExceededError struct {
	Requested int
	Max       int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("requested capacity %d exceeds maximum %d", e.Requested, e.Max)
}

type InvalidTuningError struct {
	Reason string
}

func (e InvalidTuningError) Error() string {
	return fmt.Sprintf("invalid tuning: %s", e.Reason)
}
