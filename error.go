package slabcache

import "fmt"

type constError string

const (
	// ErrInvalidCapacity may be returned from [New].
	ErrInvalidCapacity = constError("invalid capacity")
	// ErrNilAllocator may be returned from [New].
	ErrNilAllocator = constError("nil allocator")
	// ErrTypeMismatch is returned by [Get] when the resident
	// object for a key is not of the requested type.
	ErrTypeMismatch = constError("type mismatch")
)

func (errStr constError) Error() string { return string(errStr) }

func minCapacityError(capacity int) error {
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidCapacity, MinimumCapacity, capacity)
}

func typeMismatchError(key, resident, requested any) error {
	return fmt.Errorf(
		"%w: key %v is resident as %T but %T was requested",
		ErrTypeMismatch, key, resident, requested)
}
