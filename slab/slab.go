package slab

import (
	"cmp"
	"fmt"
	"slices"
	"unsafe"
)

type (
	// Addr is the offset of a slot from the start of an [Allocator]'s arena.
	Addr uint
	// Allocator hands out fixed-size slots from one preallocated arena.
	// The arena is split into one block per size class,
	// and each block is carved into slots of that class's object size.
	// Concurrent access must be guarded by the caller.
	// Constructed by [New].
	Allocator struct {
		arena []byte
		// sorted ascending by objectSize; never re-sorted.
		slabs []*slab
		// indexed by arena block.
		regions   []*slab
		blockSize int
	}
	slab struct {
		used       bitmap
		objects    []any
		base       int
		objectSize int
	}
)

// New creates an [Allocator] with a single arena of
// blockSize * len(sizeClasses) bytes.
// Every size class must be positive and no larger than blockSize.
// The order of sizeClasses only decides which block of the arena
// each class occupies.
func New(blockSize int, sizeClasses ...int) (*Allocator, error) {
	if err := validate(blockSize, sizeClasses); err != nil {
		return nil, err
	}
	var (
		arena   = newArena(blockSize * len(sizeClasses))
		regions = make([]*slab, len(sizeClasses))
	)
	for i, objectSize := range sizeClasses {
		slots := blockSize / objectSize
		regions[i] = &slab{
			used:       newBitmap(slots),
			objects:    make([]any, slots),
			base:       i * blockSize,
			objectSize: objectSize,
		}
	}
	slabs := slices.Clone(regions)
	slices.SortStableFunc(slabs, func(a, b *slab) int {
		return cmp.Compare(a.objectSize, b.objectSize)
	})
	return &Allocator{
		arena:     arena,
		slabs:     slabs,
		regions:   regions,
		blockSize: blockSize,
	}, nil
}

// newArena returns size bytes aligned to a machine word.
func newArena(size int) []byte {
	const wordSize = int(unsafe.Sizeof(uint64(0)))
	words := make([]uint64, (size+wordSize-1)/wordSize)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size)
}

func validate(blockSize int, sizeClasses []int) error {
	if blockSize <= 0 {
		return fmt.Errorf(
			"%w: block size must be >0 but %d was requested",
			ErrInvalidArena, blockSize)
	}
	if len(sizeClasses) == 0 {
		return fmt.Errorf(
			"%w: at least one size class is required",
			ErrInvalidArena)
	}
	for _, objectSize := range sizeClasses {
		if objectSize <= 0 || objectSize > blockSize {
			return fmt.Errorf(
				"%w: size class must be in [1,%d] but %d was requested",
				ErrInvalidArena, blockSize, objectSize)
		}
	}
	return nil
}

// Allocate reserves one slot from the smallest size class
// that can hold size bytes.
// Only that class is considered; if it is full,
// the returned error wraps [ErrOutOfStorage].
func (a *Allocator) Allocate(size int) (Addr, error) {
	slab, err := a.classFor(size)
	if err != nil {
		return 0, err
	}
	index, ok := slab.used.firstClear()
	if !ok {
		return 0, slabFullError(size, slab.objectSize)
	}
	slab.used.set(index)
	return Addr(slab.base + index*slab.objectSize), nil
}

func (a *Allocator) classFor(size int) (*slab, error) {
	index, _ := slices.BinarySearchFunc(a.slabs, size,
		func(s *slab, size int) int {
			return cmp.Compare(s.objectSize, size)
		})
	if index == len(a.slabs) {
		largest := a.slabs[len(a.slabs)-1].objectSize
		return nil, noSizeClassError(size, largest)
	}
	return a.slabs[index], nil
}

// Deallocate returns the slot at addr to its size class.
// Addresses outside of the arena are ignored.
// addr must otherwise be a value returned by [Allocator.Allocate];
// interior offsets are not detected.
func (a *Allocator) Deallocate(addr Addr) {
	slab, index, ok := a.slot(addr)
	if !ok {
		return
	}
	if debugging {
		assert(slab.used.test(index),
			"deallocating a free slot")
	}
	slab.objects[index] = nil
	slab.used.clear(index)
}

// slot resolves addr to its owning slab and slot index.
func (a *Allocator) slot(addr Addr) (*slab, int, bool) {
	if addr >= Addr(len(a.arena)) {
		return nil, 0, false
	}
	var (
		slab   = a.regions[int(addr)/a.blockSize]
		offset = int(addr) - slab.base
		index  = offset / slab.objectSize
	)
	if debugging {
		assert(offset%slab.objectSize == 0,
			"address is not aligned to a slot")
	}
	if index >= slab.used.length { // Block tail past the last slot.
		return nil, 0, false
	}
	return slab, index, true
}

// Bytes returns the storage of the slot at addr,
// or nil if addr is outside of the arena.
// The slice is only valid until the slot is deallocated.
func (a *Allocator) Bytes(addr Addr) []byte {
	slab, index, ok := a.slot(addr)
	if !ok {
		return nil
	}
	start := slab.base + index*slab.objectSize
	return a.arena[start : start+slab.objectSize : start+slab.objectSize]
}

// InUse returns the number of allocated slots across all size classes.
func (a *Allocator) InUse() int {
	var n int
	for _, slab := range a.slabs {
		n += slab.used.count()
	}
	return n
}

// Available returns the number of free slots in the size class
// that would serve a request of size bytes,
// or 0 if no class is large enough.
func (a *Allocator) Available(size int) int {
	slab, err := a.classFor(size)
	if err != nil {
		return 0
	}
	return slab.used.length - slab.used.count()
}

// SizeClasses returns the object sizes served, in ascending order.
func (a *Allocator) SizeClasses() []int {
	sizes := make([]int, len(a.slabs))
	for i, slab := range a.slabs {
		sizes[i] = slab.objectSize
	}
	return sizes
}

// BlockSize returns the arena bytes reserved for each size class.
func (a *Allocator) BlockSize() int { return a.blockSize }
