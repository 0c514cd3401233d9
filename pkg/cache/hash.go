package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
//
// Cache keys are hashed before touching the filesystem so that arbitrary
// key strings (URLs, package names with unicode) map to safe, fixed-length
// file names without collisions.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
