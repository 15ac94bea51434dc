// Package cache provides the advisory key/value store used to memoize
// availability and reservation lookups. Failures never propagate: a broken
// cache behaves like an empty one.
package cache

import "time"

type Cache interface {
	// Get returns the cached value and whether the key was present. Errors
	// degrade to a miss.
	Get(key string) (string, bool)
	// Set stores a value with a time-to-live. Errors are logged and dropped.
	Set(key, value string, ttl time.Duration)
	Delete(key string)
	// DeletePattern removes every key matching a glob pattern such as
	// "availability:3:*".
	DeletePattern(pattern string)
}
