package keyschedule

import (
	"bytes"
	"testing"
)

func TestDeriveProducesIndependentKeys(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0x11}, 16)

	keys, err := Derive(password, salt)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer keys.Close()

	if len(keys.FileKey.Bytes()) != 32 || len(keys.MetaKey.Bytes()) != 32 {
		t.Fatalf("unexpected key lengths: file=%d meta=%d", len(keys.FileKey.Bytes()), len(keys.MetaKey.Bytes()))
	}
	if bytes.Equal(keys.FileKey.Bytes(), keys.MetaKey.Bytes()) {
		t.Error("file_key and meta_key must differ")
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0x22}, 16)

	k1, err := Derive(password, salt)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer k1.Close()

	k2, err := Derive(password, salt)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer k2.Close()

	if !bytes.Equal(k1.FileKey.Bytes(), k2.FileKey.Bytes()) {
		t.Error("same password+salt must yield the same file_key")
	}
	if !bytes.Equal(k1.MetaKey.Bytes(), k2.MetaKey.Bytes()) {
		t.Error("same password+salt must yield the same meta_key")
	}
}

func TestCloseZeroesKeys(t *testing.T) {
	keys, err := Derive([]byte("pw"), bytes.Repeat([]byte{0x33}, 16))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	keys.Close()
	if keys.FileKey.Bytes() != nil || keys.MetaKey.Bytes() != nil {
		t.Error("Close should zero and release both keys")
	}

	// Idempotent.
	keys.Close()
}

func TestCloseOnNilKeys(t *testing.T) {
	var keys *Keys
	keys.Close() // must not panic
}
