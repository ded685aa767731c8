package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is used when no explicit capacity is configured.
const DefaultCapacity = 100

// LRUCache is a bounded in-memory implementation of the Cache port.
// When a Put pushes it above capacity, the least recently used entry is evicted.
//
// All operations are safe for concurrent use. Recency bookkeeping is done
// under the same lock as the lookup, so concurrent touches cannot corrupt
// the eviction order. Entries live for the lifetime of the process; there is
// no TTL and no explicit invalidation.
type LRUCache struct {
	capacity int
	entries  *lru.Cache[string, string]
}

func NewLRUCache(capacity int) (*LRUCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	entries, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCapacity, err.Error())
	}
	return &LRUCache{
		capacity: capacity,
		entries:  entries,
	}, nil
}

func (c *LRUCache) Get(key string) (string, bool) {
	return c.entries.Get(key)
}

func (c *LRUCache) Put(key string, value string) {
	c.entries.Add(key, value)
}

// Contains reports whether key is cached without touching its recency.
func (c *LRUCache) Contains(key string) bool {
	return c.entries.Contains(key)
}

// Keys returns the cached keys ordered from least to most recently used.
func (c *LRUCache) Keys() []string {
	return c.entries.Keys()
}

func (c *LRUCache) Capacity() int {
	return c.capacity
}

func (c *LRUCache) Size() int {
	return c.entries.Len()
}

// Clear removes all entries from the cache.
func (c *LRUCache) Clear() {
	c.entries.Purge()
}
