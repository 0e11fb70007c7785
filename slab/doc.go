// Package slab implements a fixed-storage slab allocator.
//
// An [Allocator] owns one arena, allocated once by [New] and never resized.
// The arena is divided into equal blocks, one per size class,
// and each block is carved into slots of its class's object size.
// Occupancy of every slot is tracked by a bitmap.
//
// Requests are served by the smallest size class that can hold them.
// There is no fallback to a larger class: once a class is full,
// further requests for it fail with [ErrOutOfStorage]
// until a slot of that class is released.
//
// Slots are identified by [Addr], their offset from the start of the arena.
// Releasing an address that lies outside of the arena is a no-op,
// so handles from a different allocator may be passed without faulting.
//
// [Construct] and [Allocator.Destroy] layer typed object lifetime
// on top of [Allocator.Allocate] and [Allocator.Deallocate].
package slab
