package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces swiftdocs entries inside a shared Redis server.
const redisKeyPrefix = "swiftdocs:"

// RedisStore persists cache entries in a Redis server.
//
// This backend is meant for shared deployments (CI runners, the serve
// command behind multiple replicas) where a per-machine file cache would
// be cold on every host. Expiry is enforced twice: Redis drops entries
// server-side after the ttl passed to Set, and each entry carries its
// storage time so the Cache can apply its own TTL on read.
type RedisStore struct {
	client *redis.Client
}

// redisEntry wraps cached data with its storage time.
type redisEntry struct {
	Data     []byte    `json:"data"`
	StoredAt time.Time `json:"stored_at"`
}

// NewRedisStore creates a Redis-backed store connected to addr
// (host:port). It pings the server once to fail fast on misconfiguration.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves the entry for key. A missing key or an undecodable
// entry is a miss; transport failures are returned as errors.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	var entry redisEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Damaged entry - drop it and report a miss.
		_ = s.client.Del(ctx, redisKeyPrefix+key).Err()
		return nil, time.Time{}, false, nil
	}
	return entry.Data, entry.StoredAt, true, nil
}

// Set stores data under key with server-side expiry after ttl.
// A ttl of 0 stores the entry without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw, err := json.Marshal(redisEntry{Data: data, StoredAt: time.Now()})
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err()
}

// Delete removes the entry for key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}

// Clear removes every swiftdocs entry, leaving other keys on the shared
// server untouched.
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// EvictExpired is a no-op: Redis expires entries server-side.
func (s *RedisStore) EvictExpired(ctx context.Context, ttl time.Duration) (int, error) {
	return 0, nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
