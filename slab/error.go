package slab

import "fmt"

type constError string

const (
	// ErrOutOfStorage is returned by [Allocator.Allocate] (and [Construct])
	// when the size class serving a request has no free slot,
	// or when no size class is large enough for the request.
	ErrOutOfStorage = constError("out of storage")
	// ErrInvalidArena may be returned from [New].
	ErrInvalidArena = constError("invalid arena")
)

func (errStr constError) Error() string { return string(errStr) }

func slabFullError(size, objectSize int) error {
	return fmt.Errorf(
		"%w: size class %d (serving %d bytes) has no free slot",
		ErrOutOfStorage, objectSize, size)
}

func noSizeClassError(size, largest int) error {
	return fmt.Errorf(
		"%w: no size class fits %d bytes (largest is %d)",
		ErrOutOfStorage, size, largest)
}
