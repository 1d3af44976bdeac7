// Package primitives provides cryptographic building blocks for the archive
// codec: key derivation, authenticated encryption, header authentication,
// and secure key cleanup. This is audit-critical code — the on-disk format
// depends on every parameter here remaining fixed.
package primitives

import (
	"crypto/rand"
	"fmt"
)

// RandomBytes generates n cryptographically secure random bytes, suitable
// for salts, nonces, and any other value that must be unpredictable.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("fatal crypto/rand error: %w", err)
	}
	return b, nil
}
