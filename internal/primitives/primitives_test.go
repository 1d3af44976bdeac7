package primitives

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomBytes(t *testing.T) {
	b, err := RandomBytes(32)
	require.NoError(t, err)
	require.Len(t, b, 32)

	b2, err := RandomBytes(32)
	require.NoError(t, err)
	require.False(t, bytes.Equal(b, b2), "two independent calls produced identical output")
}

func TestDeriveKeyDeterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := make([]byte, 16)
	for i := range salt {
		salt[i] = byte(i)
	}

	key1, err := DeriveKey(password, salt, InfoFileKey)
	require.NoError(t, err)
	require.Len(t, key1, KeySize)

	key2, err := DeriveKey(password, salt, InfoFileKey)
	require.NoError(t, err)
	require.Equal(t, key1, key2, "same inputs should produce the same key")
}

func TestDeriveKeyDomainSeparation(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := make([]byte, 16)

	fileKey, err := DeriveFileKey(password, salt)
	require.NoError(t, err)
	metaKey, err := DeriveMetaKey(password, salt)
	require.NoError(t, err)

	require.NotEqual(t, fileKey, metaKey, "file_key and meta_key must be independent")
}

func TestDeriveKeyRejectsEmptySalt(t *testing.T) {
	_, err := DeriveKey([]byte("pw"), nil, InfoFileKey)
	require.Error(t, err)
}

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("entry-0")

	nonce, ciphertext, err := Seal(key, plaintext, aad)
	require.NoError(t, err)
	require.Len(t, nonce, NonceSize)
	require.Len(t, ciphertext, len(plaintext)+TagSize)

	recovered, err := Open(key, nonce, ciphertext, aad)
	require.NoError(t, err)
	require.Equal(t, plaintext, recovered)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)
	nonce, ciphertext, err := Seal(key, []byte("payload"), nil)
	require.NoError(t, err)

	tampered := append([]byte(nil), ciphertext...)
	tampered[0] ^= 0xFF

	_, err = Open(key, nonce, tampered, nil)
	require.Error(t, err)
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)
	nonce, ciphertext, err := Seal(key, []byte("payload"), []byte("entry-0"))
	require.NoError(t, err)

	_, err = Open(key, nonce, ciphertext, []byte("entry-1"))
	require.Error(t, err)
}

func TestHeaderHMACVerify(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)
	data := []byte("archive header bytes")

	tag := HeaderHMAC(key, data)
	require.Len(t, tag, HMACSize)
	require.True(t, VerifyHeaderHMAC(key, data, tag))

	tamperedData := append([]byte(nil), data...)
	tamperedData[0] ^= 0x01
	require.False(t, VerifyHeaderHMAC(key, tamperedData, tag))

	wrongKey, err := RandomBytes(KeySize)
	require.NoError(t, err)
	require.False(t, VerifyHeaderHMAC(wrongKey, data, tag))
}

func TestSecureZero(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	SecureZero(b)
	require.Equal(t, []byte{0, 0, 0, 0, 0}, b)

	// Should not panic on empty input.
	SecureZero(nil)
}

func TestKeyMaterialClose(t *testing.T) {
	original := []byte{9, 9, 9, 9}
	km := NewKeyMaterial(original)

	require.Equal(t, original, km.Bytes())

	km.Close()
	require.Nil(t, km.Bytes())

	// original slice must be untouched since KeyMaterial owns a copy
	require.Equal(t, []byte{9, 9, 9, 9}, original)

	// Close must be idempotent.
	km.Close()
}
