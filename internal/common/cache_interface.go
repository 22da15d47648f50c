package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis caches.
// Permission decisions, candidate listings and fundraiser sums all go
// through it so the backing store can be swapped per environment.
type CacheInterface interface {
	// Set stores a value under key for the given duration
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value by key
	Delete(key string)

	// DeletePrefix removes every key starting with prefix
	DeletePrefix(prefix string)

	// GetOrSet returns the cached value, or loads and stores it on a miss
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections
	Close() error
}
