package cache

import (
	"container/list"
	"errors"
)

// ErrInvalidCapacity is returned by New for a negative capacity.
var ErrInvalidCapacity = errors.New("cache: capacity must not be negative")

// LRU is a bounded mapping with strict least-recently-used eviction.
//
// Get and Set both count as use and promote the key; when an insert pushes
// the cache over capacity, the single least-recently-used entry is evicted.
// Both operations are amortized O(1).
//
// A capacity of 0 is a pass-through cache: nothing is ever retained. An
// unbounded cache (NewUnbounded) never evicts.
//
// LRU is not safe for concurrent use; callers that share an instance across
// goroutines must synchronize externally.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List // front = most recently used

	hits   int64
	misses int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

const unbounded = -1

// New creates an LRU with the given capacity. A negative capacity fails
// with ErrInvalidCapacity; zero creates a pass-through cache.
func New[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	return newLRU[K, V](capacity), nil
}

// NewUnbounded creates an LRU that never evicts.
func NewUnbounded[K comparable, V any]() *LRU[K, V] {
	return newLRU[K, V](unbounded)
}

func newLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the value stored under key and promotes it to
// most-recently-used. ok is false on a miss; a miss is not an error.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	el, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Set inserts or updates key and promotes it. If the insert exceeds the
// capacity, the least-recently-used entry is evicted.
func (c *LRU[K, V]) Set(key K, value V) {
	if c.capacity == 0 {
		return
	}

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})

	if c.capacity != unbounded && c.order.Len() > c.capacity {
		c.removeElement(c.order.Back())
	}
}

// Delete removes key, reporting whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(el)
	return true
}

// Contains reports presence without affecting recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int { return c.order.Len() }

// Clear removes all entries.
func (c *LRU[K, V]) Clear() {
	c.items = make(map[K]*list.Element)
	c.order.Init()
}

// Keys returns the keys in recency order, most-recently-used first.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[K, V]).key)
	}
	return keys
}

// Each visits entries in recency order, most-recently-used first, until fn
// returns false. Visiting does not affect recency.
func (c *LRU[K, V]) Each(fn func(key K, value V) bool) {
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K, V])
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Stats returns the hit and miss counters accumulated by Get.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits, c.misses
}

func (c *LRU[K, V]) removeElement(el *list.Element) {
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
