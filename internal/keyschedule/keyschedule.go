// Package keyschedule derives the two independent keys the archive codec
// needs from a single (password, salt) pair.
package keyschedule

import "slam/internal/primitives"

// Keys holds the two domain-separated keys derived from a single
// (password, salt) pair. Close must be called on every exit path to zero
// both keys.
type Keys struct {
	FileKey *primitives.KeyMaterial
	MetaKey *primitives.KeyMaterial
}

// Derive produces file_key and meta_key from (password, salt) via PBKDF2,
// using distinct info strings so the same password+salt yields independent
// keys for the two domains.
func Derive(password, salt []byte) (*Keys, error) {
	fileKey, err := primitives.DeriveFileKey(password, salt)
	if err != nil {
		return nil, err
	}
	metaKey, err := primitives.DeriveMetaKey(password, salt)
	if err != nil {
		primitives.SecureZero(fileKey)
		return nil, err
	}

	keys := &Keys{
		FileKey: primitives.NewKeyMaterial(fileKey),
		MetaKey: primitives.NewKeyMaterial(metaKey),
	}
	primitives.SecureZero(fileKey)
	primitives.SecureZero(metaKey)
	return keys, nil
}

// Close zeros both derived keys. Idempotent.
func (k *Keys) Close() {
	if k == nil {
		return
	}
	k.FileKey.Close()
	k.MetaKey.Close()
}
