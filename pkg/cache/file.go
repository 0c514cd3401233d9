package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists cache entries as files in a directory.
//
// Each entry is stored in a file named by the SHA-256 hash of its key,
// which keeps arbitrary keys safe for the filesystem and avoids
// collisions between namespaces. The file modification time records when
// the entry was stored; expiry is decided against it at read time.
//
// Multiple FileStore instances (even in different processes) can share
// the same directory. Writes are last-write-wins.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store rooted at dir.
//
// If dir is empty, the default directory is used (the swiftdocs
// subdirectory of the user cache dir, e.g. ~/.cache/swiftdocs). The
// directory is created with mode 0755 if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns the default cache directory,
// $XDG_CACHE_HOME/swiftdocs or ~/.cache/swiftdocs on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "swiftdocs"), nil
}

// Dir returns the absolute path to the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Get retrieves the entry for key. A missing or unreadable file is a
// miss, never an error.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	path := s.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, false, nil
	}
	return data, info.ModTime(), true, nil
}

// Set stores data under key, overwriting any existing entry. The write
// refreshes the entry's modification time and therefore its TTL.
// The ttl parameter is unused; the Cache checks age on read.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return os.WriteFile(s.path(key), data, 0o644)
}

// Delete removes the entry for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry in the store directory. The directory
// itself is kept.
func (s *FileStore) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// EvictExpired removes entries whose modification time is older than
// ttl and returns how many were removed. A ttl of 0 means entries never
// expire, so nothing is removed.
func (s *FileStore) EvictExpired(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	cutoff := time.Now().Add(-ttl)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// Close does nothing for a file store.
func (s *FileStore) Close() error { return nil }

// path converts a cache key to a file path via its SHA-256 hash.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, Hash([]byte(key)))
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
