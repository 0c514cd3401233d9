package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/swiftdocs/swiftdocs/pkg/observability"
)

// Cache is a two-tier, time-bounded cache for JSON-marshalable values.
//
// Reads consult an in-memory map first; on a miss the persistent [Store]
// is checked and a fresh hit is promoted into memory before returning.
// Writes update memory synchronously and persist best-effort: a failed
// store write never fails the caller, it only costs the entry its
// persistence.
//
// The TTL is fixed per Cache instance. An entry older than the TTL is
// never returned as a hit: it is evicted lazily when a read encounters
// it, and proactively by [Cache.EvictExpired]. A TTL of 0 means entries
// never expire.
//
// Use [Cache.Namespace] to create scoped views that automatically prefix
// keys, avoiding collisions between different data sources:
//
//	meta := c.Namespace("metadata:")
//	docs := c.Namespace("docs:")
//	meta.Put(ctx, "Alamofire", m) // key becomes "metadata:Alamofire"
//
// Namespaced views share the underlying tiers with their parent, so a
// Clear through any view clears everything.
type Cache struct {
	state  *state
	prefix string
}

// state is shared across namespaced views of the same Cache.
type state struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	store   Store
	ttl     time.Duration
}

// memEntry is one in-memory tier entry.
type memEntry struct {
	data     []byte
	storedAt time.Time
}

// New creates a Cache over the given store with the given TTL.
// A nil store disables persistence.
func New(store Store, ttl time.Duration) *Cache {
	if store == nil {
		store = NewNullStore()
	}
	return &Cache{
		state: &state{
			entries: make(map[string]memEntry),
			store:   store,
			ttl:     ttl,
		},
	}
}

// TTL returns the time-to-live for entries in this cache.
// A TTL of 0 means entries never expire.
func (c *Cache) TTL() time.Duration { return c.state.ttl }

// Store returns the persistent backend behind this cache.
func (c *Cache) Store() Store { return c.state.store }

// Namespace returns a view of the cache that prefixes all keys with
// prefix. Views share tiers with the parent; Namespace calls can be
// chained to build hierarchical key spaces.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{state: c.state, prefix: c.prefix + prefix}
}

// Get retrieves a cached value by key and unmarshals it into v.
//
// Return values indicate three outcomes:
//   - (true, nil): hit. The value was found, is fresh, and unmarshaled into v.
//   - (false, nil): miss. No fresh entry exists. v is unchanged.
//   - (false, err): backend failure or unmarshal error.
//
// v must be a pointer to a type compatible with json.Unmarshal.
func (c *Cache) Get(ctx context.Context, key string, v any) (bool, error) {
	k := c.prefix + key
	s := c.state

	s.mu.RLock()
	e, ok := s.entries[k]
	s.mu.RUnlock()
	if ok {
		if s.fresh(e.storedAt) {
			observability.Cache().OnCacheHit(ctx, c.prefix)
			return true, json.Unmarshal(e.data, v)
		}
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have
		// refreshed the entry in the meantime.
		if cur, exists := s.entries[k]; exists && !s.fresh(cur.storedAt) {
			delete(s.entries, k)
		}
		s.mu.Unlock()
	}

	data, storedAt, ok, err := s.store.Get(ctx, k)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, c.prefix)
		return false, err
	}
	if !s.fresh(storedAt) {
		_ = s.store.Delete(ctx, k)
		observability.Cache().OnCacheMiss(ctx, c.prefix)
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Damaged entry - drop it and report a miss.
		_ = s.store.Delete(ctx, k)
		observability.Cache().OnCacheMiss(ctx, c.prefix)
		return false, nil
	}

	s.mu.Lock()
	s.entries[k] = memEntry{data: data, storedAt: storedAt}
	s.mu.Unlock()

	observability.Cache().OnCacheHit(ctx, c.prefix)
	return true, nil
}

// Put stores a value under key in both tiers.
//
// The memory tier is updated synchronously. The store write is
// best-effort: its failure is swallowed so that a full disk or an
// unreachable Redis never breaks a resolution. Marshal failures are
// returned.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	k := c.prefix + key
	s := c.state

	s.mu.Lock()
	s.entries[k] = memEntry{data: data, storedAt: time.Now()}
	s.mu.Unlock()

	observability.Cache().OnCacheSet(ctx, c.prefix, len(data))
	_ = s.store.Set(ctx, k, data, s.ttl)
	return nil
}

// Delete removes the entry for key from both tiers.
func (c *Cache) Delete(ctx context.Context, key string) error {
	k := c.prefix + key
	s := c.state

	s.mu.Lock()
	delete(s.entries, k)
	s.mu.Unlock()

	return s.store.Delete(ctx, k)
}

// Clear removes all entries from both tiers, including entries written
// through other namespaced views.
func (c *Cache) Clear(ctx context.Context) error {
	s := c.state

	s.mu.Lock()
	s.entries = make(map[string]memEntry)
	s.mu.Unlock()

	return s.store.Clear(ctx)
}

// EvictExpired removes expired entries from both tiers and returns the
// number of tier entries removed. Fresh entries are never touched.
func (c *Cache) EvictExpired(ctx context.Context) (int, error) {
	s := c.state

	removed := 0
	s.mu.Lock()
	for k, e := range s.entries {
		if !s.fresh(e.storedAt) {
			delete(s.entries, k)
			removed++
		}
	}
	s.mu.Unlock()

	swept, err := s.store.EvictExpired(ctx, s.ttl)
	return removed + swept, err
}

// Close releases the underlying store's resources.
func (c *Cache) Close() error {
	return c.state.store.Close()
}

// fresh reports whether an entry stored at storedAt is within the TTL.
func (s *state) fresh(storedAt time.Time) bool {
	return s.ttl <= 0 || time.Since(storedAt) <= s.ttl
}
