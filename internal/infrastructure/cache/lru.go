// Package cache provides small in-process caches for the infrastructure adapters.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/bnema/startdash/internal/application/port"
)

// LRU is a thread-safe least recently used cache with a fixed capacity whose
// entries may expire. Expired entries are dropped when read or pruned.
type LRU[K comparable, V any] struct {
	capacity int
	now      func() time.Time

	mu    sync.Mutex
	items map[K]*list.Element
	order *list.List // Front = most recent, Back = least recent
}

var _ port.Cache[string, int] = (*LRU[string, int])(nil)

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time // zero never expires
}

// NewLRU creates a cache holding at most capacity entries. A capacity below
// one is raised to one.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return NewLRUWithClock[K, V](capacity, time.Now)
}

// NewLRUWithClock is NewLRU with an explicit clock for expiry checks.
func NewLRUWithClock[K comparable, V any](capacity int, now func() time.Time) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		now:      now,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the live value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := elem.Value.(*entry[K, V])
	if c.expired(e) {
		c.removeElement(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

// Set stores a value that never expires.
func (c *LRU[K, V]) Set(key K, value V) {
	c.SetUntil(key, value, time.Time{})
}

// SetUntil stores a value that expires at the given instant. Storing an
// already expired value removes the key instead.
func (c *LRU[K, V]) SetUntil(key K, value V, expires time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !expires.IsZero() && !c.now().Before(expires) {
		if elem, ok := c.items[key]; ok {
			c.removeElement(elem)
		}
		return
	}

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[K, V])
		e.value, e.expires = value, expires
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evict()
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expires: expires})
}

// evict drops an expired entry if there is one, else the least recently used.
func (c *LRU[K, V]) evict() {
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		if c.expired(elem.Value.(*entry[K, V])) {
			c.removeElement(elem)
			return
		}
	}
	if oldest := c.order.Back(); oldest != nil {
		c.removeElement(oldest)
	}
}

// Remove deletes a key from the cache.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// Prune drops every expired entry and returns how many were removed.
func (c *LRU[K, V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if c.expired(elem.Value.(*entry[K, V])) {
			c.removeElement(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Len returns the number of stored entries, expired ones included until pruned.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all items from the cache.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.order.Init()
}

func (c *LRU[K, V]) expired(e *entry[K, V]) bool {
	return !e.expires.IsZero() && !c.now().Before(e.expires)
}

func (c *LRU[K, V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry[K, V]).key)
}
