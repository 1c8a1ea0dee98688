package querycache

import (
	"sync"
)

// Cache is a thread-safe key-value cache for query results.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

// Set stores a value under key, replacing any previous value.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate removes the given keys. Missing keys are ignored.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetTyped returns the cached value for key when it has type T.
// A value of a different type reports a miss.
func GetTyped[T any](c *Cache, key string) (T, bool) {
	value, ok := c.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}
