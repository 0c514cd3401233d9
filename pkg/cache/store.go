// Package cache provides time-bounded caching for resolved package data.
//
// The package separates the caching policy from the storage mechanism:
//
//   - [Cache] is the facade used by the rest of swiftdocs. It keeps a
//     fast in-memory tier in front of a persistent [Store], enforces a
//     per-instance TTL, and exposes namespaced views.
//   - [Store] is the byte-level backend. [FileStore] persists entries as
//     files under the cache directory, [RedisStore] shares entries
//     through a Redis server, and [NullStore] disables persistence.
//
// Entries carry their storage time; an entry older than the TTL is never
// returned as a hit. Expired entries are evicted lazily on read and
// proactively by [Cache.EvictExpired].
//
// A Cache is safe for concurrent use. Multiple processes can share a
// FileStore directory; writes are last-write-wins with no cross-process
// locking.
package cache

import (
	"context"
	"time"
)

// Store is the persistent backend behind a [Cache].
//
// Implementations must treat missing, unreadable, or corrupt entries as
// a miss rather than an error, so that a damaged cache never breaks a
// resolution. Real infrastructure failures (e.g. an unreachable Redis
// server) may be reported as errors; callers degrade them to misses.
type Store interface {
	// Get returns the stored data for key and the time it was stored.
	// ok is false when no usable entry exists.
	Get(ctx context.Context, key string) (data []byte, storedAt time.Time, ok bool, err error)

	// Set stores data under key. The ttl is advisory: backends with
	// server-side expiry (Redis) enforce it, file-based backends rely
	// on the Cache checking storedAt against its TTL on read.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// EvictExpired removes entries older than ttl and returns how many
	// were removed. Backends with server-side expiry may return 0.
	EvictExpired(ctx context.Context, ttl time.Duration) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
