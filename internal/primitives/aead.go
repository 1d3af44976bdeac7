package primitives

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// AEAD sizing. The archive format fixes 96-bit nonces and 128-bit tags, which
// is the standard (non-X) ChaCha20-Poly1305 construction rather than the
// XChaCha20 variant's 192-bit nonce.
const (
	NonceSize = chacha20poly1305.NonceSize // 12
	TagSize   = chacha20poly1305.Overhead  // 16
)

// Seal encrypts plaintext under key with a fresh random nonce, returning
// (nonce, ciphertext||tag). aad, if non-nil, is authenticated but not
// encrypted.
func Seal(key, plaintext, aad []byte) (nonce, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, fmt.Errorf("primitives: constructing AEAD cipher: %w", err)
	}

	nonce, err = RandomBytes(NonceSize)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aead.Seal(nil, nonce, plaintext, aad)
	return nonce, ciphertext, nil
}

// Open decrypts ciphertext (which must include the trailing tag) under key
// using nonce and aad, returning the plaintext. A non-nil error indicates
// either a malformed ciphertext or an authentication failure; the caller is
// responsible for mapping this to the appropriate taxonomy error.
func Open(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, errors.New("primitives: invalid nonce size")
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("primitives: constructing AEAD cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("primitives: AEAD authentication failed: %w", err)
	}

	return plaintext, nil
}
