package cache

import (
	"container/list"
	"sync"
)

// NamespaceLRU is a namespace-based LRU cache. Keys are scoped by namespace so
// the same key may hold different values in different namespaces.
type NamespaceLRU[V any] struct {
	capacity int
	items    map[cacheKey]*list.Element
	queue    *list.List
	mutex    sync.Mutex
}

type cacheKey struct {
	namespace string
	key       string
}

type entry[V any] struct {
	key   cacheKey
	value V
}

// NewNamespaceLRU creates a cache holding at most capacity entries across all
// namespaces. A capacity below 1 is treated as 1.
func NewNamespaceLRU[V any](capacity int) *NamespaceLRU[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &NamespaceLRU[V]{
		capacity: capacity,
		items:    make(map[cacheKey]*list.Element),
		queue:    list.New(),
	}
}

// Set adds or updates a value and marks it most recently used
func (c *NamespaceLRU[V]) Set(namespace, key string, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	k := cacheKey{namespace: namespace, key: key}
	if element, exists := c.items[k]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry[V]).value = value
		return
	}

	c.items[k] = c.queue.PushFront(&entry[V]{key: k, value: value})

	for c.queue.Len() > c.capacity {
		c.evict()
	}
}

// Get retrieves a value and marks it most recently used
func (c *NamespaceLRU[V]) Get(namespace, key string) (V, bool) {
	// Get reorders the queue, so it takes the write lock
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[cacheKey{namespace: namespace, key: key}]
	if !exists {
		var zero V
		return zero, false
	}

	c.queue.MoveToFront(element)
	return element.Value.(*entry[V]).value, true
}

// Invalidate removes a single key
func (c *NamespaceLRU[V]) Invalidate(namespace, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	k := cacheKey{namespace: namespace, key: key}
	if element, exists := c.items[k]; exists {
		c.queue.Remove(element)
		delete(c.items, k)
	}
}

// InvalidateNamespace removes every key of a namespace
func (c *NamespaceLRU[V]) InvalidateNamespace(namespace string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for k, element := range c.items {
		if k.namespace == namespace {
			c.queue.Remove(element)
			delete(c.items, k)
		}
	}
}

// Size returns the current number of items in the cache
func (c *NamespaceLRU[V]) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.queue.Len()
}

func (c *NamespaceLRU[V]) evict() {
	element := c.queue.Back()
	if element == nil {
		return
	}
	c.queue.Remove(element)
	delete(c.items, element.Value.(*entry[V]).key)
}
