package common

import "time"

// CacheInterface is the contract the auth middleware and services cache
// through. The in-memory go-cache implementation backs it by default; a
// Redis-backed one can swap in without touching callers.
type CacheInterface interface {
	// Set stores a value under key for the given TTL.
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the cached value and true, or nil and false on a miss.
	Get(key string) (interface{}, bool)

	// Delete drops a key. Used to invalidate member claims when the board
	// changes a role or account status.
	Delete(key string)

	// GetOrSet returns the cached value or runs loader and caches its result
	// for the TTL. A loader error is returned without caching.
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections.
	Close() error
}
