package cache

import (
	"context"
	"time"
)

// NullStore is a no-op store that never persists anything.
// Used when caching is disabled (--no-cache) and in tests.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Get always returns a miss.
func (s *NullStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	return nil, time.Time{}, false, nil
}

// Set does nothing.
func (s *NullStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (s *NullStore) Clear(ctx context.Context) error {
	return nil
}

// EvictExpired does nothing.
func (s *NullStore) EvictExpired(ctx context.Context, ttl time.Duration) (int, error) {
	return 0, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
