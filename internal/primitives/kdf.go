package primitives

import (
	"bytes"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters.
//
// CRITICAL: these values MUST NOT change or existing archives cannot be
// opened. Iteration count and output size are part of the on-disk contract.
const (
	PBKDF2Iterations = 1_000_000
	KeySize          = 32 // bytes, for both file_key and meta_key
)

// Domain-separation info strings. PBKDF2 has no native info parameter (unlike
// HKDF), so each derived key appends its own literal info string to the salt
// before stretching, which keeps the file and metadata keys independent even
// though they're derived from the same password and salt.
const (
	InfoFileKey = "file encryption"
	InfoMetaKey = "metadata encryption"
)

// DeriveKey stretches password with salt||info via PBKDF2-HMAC-SHA256,
// producing a KeySize-byte key. info provides domain separation between
// keys derived from the same (password, salt) pair.
func DeriveKey(password, salt []byte, info string) ([]byte, error) {
	if len(salt) == 0 {
		return nil, errors.New("primitives: DeriveKey requires a non-empty salt")
	}

	effectiveSalt := make([]byte, 0, len(salt)+len(info))
	effectiveSalt = append(effectiveSalt, salt...)
	effectiveSalt = append(effectiveSalt, info...)

	key := pbkdf2.Key(password, effectiveSalt, PBKDF2Iterations, KeySize, sha256.New)

	if bytes.Equal(key, make([]byte, KeySize)) {
		return nil, errors.New("primitives: PBKDF2 produced an all-zero key")
	}

	return key, nil
}

// DeriveFileKey derives the file_key used to seal per-entry payloads.
func DeriveFileKey(password, salt []byte) ([]byte, error) {
	return DeriveKey(password, salt, InfoFileKey)
}

// DeriveMetaKey derives the meta_key used to seal header metadata
// (comment, output directory, per-entry FileEntryPlain records).
func DeriveMetaKey(password, salt []byte) ([]byte, error) {
	return DeriveKey(password, salt, InfoMetaKey)
}
