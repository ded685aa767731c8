package cache

// Cache defines the port for memoizing resolved quotes.
// Only successful resolutions are written; failures never reach the cache.
//
// The port keeps string-only key/value storage so the resolver does not
// depend on a particular eviction strategy.
type Cache interface {
	// Get retrieves the value stored for key.
	// A hit counts as a use and refreshes the entry's recency.
	Get(key string) (string, bool)

	// Put stores a key-value pair, overwriting any existing value.
	// The entry becomes the most recently used one.
	Put(key string, value string)
}
