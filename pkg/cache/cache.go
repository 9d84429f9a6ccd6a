// Package cache provides pluggable byte caches for computed charts.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// # Keys
//
// A [Keyer] builds cache keys from content hashes and options, so that
// changing any input (collection data, window, mode, columns, format)
// yields a different key. Wrap a keyer with [NewScopedKeyer] to namespace
// keys in a shared backend.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
