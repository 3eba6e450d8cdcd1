package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// sha256Pool is a package-level pool of reusable SHA-256 hash instances.
var sha256Pool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// SHA256Hex computes the unkeyed SHA-256 digest of data and returns it
// hex-encoded (64 lower-case characters).
//
// Behavior:
//   - Retrieves a hash.Hash instance from sync.Pool
//   - Resets it, writes the data, computes the sum
//   - Resets again and returns it to the pool
//
// Example usage:
//
//	digest := utils.SHA256Hex(rawResetToken)
func SHA256Hex(data string) string {
	h := sha256Pool.Get().(hash.Hash)
	h.Reset()

	h.Write([]byte(data))
	sum := h.Sum(nil)

	h.Reset()
	sha256Pool.Put(h)

	return hex.EncodeToString(sum)
}
