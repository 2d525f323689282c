// Package cache provides pluggable byte caches for HTTP responses fetched
// from the Nomis API.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for long-running API servers
//   - [MongoCache]: MongoDB collection with a TTL index
//   - [NullCache]: disables caching (--no-cache)
//
// Keys are produced by a [Keyer] so that different deployments can scope
// their entries (see [ScopedKeyer]).
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	// TTLHTTP is how long raw API responses are kept. Nomis codelists change
	// rarely; dataset releases happen at most monthly.
	TTLHTTP = 24 * time.Hour

	// TTLData is how long data query responses are kept.
	TTLData = time.Hour
)

// Cache is a byte store with per-entry expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
