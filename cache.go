package slabcache

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/djdv/go-slabcache/internal/ring"
	"github.com/djdv/go-slabcache/metrics"
	"github.com/djdv/go-slabcache/slab"
)

type (
	// Matcher reports whether an object is identified by key.
	Matcher[Key any] interface {
		Matches(key Key) bool
	}
	// Object is the capability [Get] requires of a cached type T:
	// a pointer to T which is constructed from a key by Init,
	// and identified by that key through Matches.
	// If *T also implements [slab.Destroyer],
	// Destroy is called when the object is evicted.
	Object[Key, T any] interface {
		*T
		Init(key Key)
		Matcher[Key]
	}
	resident[Key any] struct {
		object Matcher[Key]
		addr   slab.Addr
	}
	element[Key any] = ring.Ring[resident[Key]]
	// Cache holds up to a fixed number of objects, constructed on demand
	// in storage reserved from a [slab.Allocator], and evicted
	// by the second-chance (CLOCK) replacement algorithm.
	// Concurrent access must be guarded by the caller.
	// Constructed by [New].
	Cache[Key any] struct {
		allocator *slab.Allocator
		// front is the most recently (re)inserted resident;
		// front.Prev() is the eviction candidate.
		front            *element[Key]
		log              Logger
		metrics          metrics.Interface
		capacity, length int
	}
)

// MinimumCapacity defines the lowest value supported by [New].
const MinimumCapacity = 1

// New creates a [Cache] holding up to capacity objects
// in storage reserved from allocator.
// The cache should be the allocator's only client.
func New[Key any](capacity int, allocator *slab.Allocator, options ...Option) (*Cache[Key], error) {
	if capacity < MinimumCapacity {
		return nil, minCapacityError(capacity)
	}
	if allocator == nil {
		return nil, ErrNilAllocator
	}
	settings := newSettings(options)
	return &Cache[Key]{
		allocator: allocator,
		log:       settings.logger,
		metrics:   settings.metrics,
		capacity:  capacity,
	}, nil
}

// NewWithArena creates a [Cache] along with its own [slab.Allocator].
// See [slab.New] for blockSize and sizeClasses.
func NewWithArena[Key any](capacity, blockSize int, sizeClasses []int, options ...Option) (*Cache[Key], error) {
	allocator, err := slab.New(blockSize, sizeClasses...)
	if err != nil {
		return nil, err
	}
	return New[Key](capacity, allocator, options...)
}

// Get returns the resident object matching key, and marks it as referenced.
// Otherwise it constructs a new PT from key, evicting a resident if the
// cache is full.
//
// The returned object is only valid until it is evicted by a later call.
// If the resident object for key is not a PT, the error wraps [ErrTypeMismatch].
// If the allocator cannot hold a new PT, the error wraps [slab.ErrOutOfStorage];
// a resident evicted before the failure stays evicted.
func Get[T any, PT Object[Key, T], Key any](c *Cache[Key], key Key) (PT, error) {
	if found := c.lookup(key); found != nil {
		object, ok := found.Value.object.(PT)
		if !ok {
			return object, typeMismatchError(key, found.Value.object, object)
		}
		found.Marked = true
		c.metrics.IncHit()
		return object, nil
	}
	c.metrics.IncMiss()
	if c.atCapacity() {
		c.evict()
	}
	addr, object, err := slab.Construct(c.allocator, func(object *T) {
		PT(object).Init(key)
	})
	if err != nil {
		c.metrics.IncAllocFailure()
		c.log.Error("construct failed",
			"key", key, "residents", c.length, "error", err)
		var zero PT
		return zero, err
	}
	c.pushFront(resident[Key]{
		object: PT(object),
		addr:   addr,
	})
	return PT(object), nil
}

func (c *Cache[Key]) lookup(key Key) *element[Key] {
	for element := range c.front.Iter() {
		if element.Value.object.Matches(key) {
			return element
		}
	}
	return nil
}

func (c *Cache[_]) atCapacity() bool {
	return c.length == c.capacity
}

// evict destroys the least recently (re)inserted resident
// that has not been referenced since it was last spared.
// Marked residents at the back are spared once:
// their mark is cleared and they move to the front.
func (c *Cache[Key]) evict() {
	if debugging {
		assert(c.front != nil,
			"evicting from an empty cache")
		assert(c.front.Len() == c.length,
			"resident count disagrees with the ring")
	}
	var forgiven int
	for back := c.front.Prev(); back.Marked; back = c.front.Prev() {
		back.Marked = false
		c.front = back
		forgiven++
	}
	if debugging {
		assert(forgiven <= c.length,
			"eviction scan passed every resident twice")
	}
	victim := c.front.Prev()
	c.unlink(victim)
	c.allocator.Destroy(victim.Value.addr)
	c.metrics.AddForgiven(forgiven)
	c.metrics.AddEvicted(1)
	if c.log.Enabled(context.Background(), slog.LevelDebug) {
		c.log.Debug("evicted resident",
			"object", victim.Value.object, "forgiven", forgiven)
	}
}

func (c *Cache[Key]) unlink(victim *element[Key]) {
	if c.length == 1 {
		c.front = nil
	} else {
		victim.Prev().Unlink(1)
	}
	c.length--
	c.metrics.SetResidents(c.length)
}

func (c *Cache[Key]) pushFront(value resident[Key]) {
	element := &element[Key]{Value: value}
	if c.front != nil {
		c.front.Prev().Link(element)
	}
	c.front = element
	c.length++
	c.metrics.SetResidents(c.length)
}

// Len returns the number of resident objects.
func (c *Cache[_]) Len() int { return c.length }

// Empty reports whether no objects are resident.
func (c *Cache[_]) Empty() bool { return c.length == 0 }

// Capacity returns the maximum number of resident objects.
func (c *Cache[_]) Capacity() int { return c.capacity }

// Allocator returns the allocator objects are constructed in.
func (c *Cache[_]) Allocator() *slab.Allocator { return c.allocator }

// All returns an iterator over the resident objects and their marks,
// from the most recently (re)inserted to the next eviction candidate.
func (c *Cache[_]) All() iter.Seq2[any, bool] {
	return func(yield func(any, bool) bool) {
		for element := range c.front.Iter() {
			if !yield(element.Value.object, element.Marked) {
				return
			}
		}
	}
}

// String formats the residents in the same order as [Cache.All],
// as "<object> (<mark>) " per resident.
func (c *Cache[_]) String() string {
	var b strings.Builder
	for object, marked := range c.All() {
		mark := 0
		if marked {
			mark = 1
		}
		fmt.Fprintf(&b, "%v (%d) ", object, mark)
	}
	return b.String()
}
