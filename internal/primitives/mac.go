package primitives

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// HMACSize is the output size of the header authentication tag.
const HMACSize = sha256.Size // 32

// HeaderHMAC computes an HMAC-SHA256 over data keyed by key. Used to
// authenticate the archive header as a whole (magic, version, counts,
// and the encrypted comment/outdir regions) independent of the per-entry
// AEAD tags.
func HeaderHMAC(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// VerifyHeaderHMAC recomputes the HMAC over data and compares it against
// tag in constant time.
func VerifyHeaderHMAC(key, data, tag []byte) bool {
	expected := HeaderHMAC(key, data)
	return subtle.ConstantTimeCompare(expected, tag) == 1
}
