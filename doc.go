// Package slabcache implements a bounded object [Cache] whose objects
// are constructed in storage reserved from a [slab.Allocator],
// and replaced using the second-chance (CLOCK) algorithm.
//
// Objects are expensive to construct and are looked up by a domain key
// rather than by identity: [Get] scans the residents for one whose
// Matches method accepts the key, and constructs a new object from the
// key through its Init method when none does.
// Different object types may share one cache; [Get] checks the
// resident's type against the one requested.
//
// Glossary and invariants:
//
//   - Resident
//
//     An object currently held by the cache, bound to one allocator slot.
//     0 <= residents <= capacity.
//
//   - Front / back
//
//     Residents are ordered by (re)insertion. The front is the most
//     recently inserted or spared resident, the back is the eviction candidate.
//     Hits do not reorder residents.
//
//   - Marked
//
//     Set when a lookup hits the resident;
//     cleared when an eviction scan spares it.
//
// Operations:
//
//   - Eviction
//
//     When a miss finds the cache full, the back is inspected.
//     A marked back is spared: its mark is cleared and it becomes the front.
//     The first unmarked back is destroyed and its slot released to the allocator.
//     Each spare clears a mark, so the scan ends within capacity steps.
//
//   - Construction
//
//     A slot sized for the requested type is reserved, the object is
//     initialized from the key, and it becomes the front.
//     If the allocator has no room, [Get] fails with [slab.ErrOutOfStorage].
//     Nothing is retried; a resident evicted before the failure stays evicted.
//
// Objects returned by [Get] are only valid until they are evicted,
// which may happen during any later call to [Get].
package slabcache
