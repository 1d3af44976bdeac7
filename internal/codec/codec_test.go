package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"slam/internal/slamerrors"
)

func roundTrip(t *testing.T, algo Algorithm, level int, plain []byte) {
	t.Helper()

	compressed, err := Compress(algo, level, plain)
	if err != nil {
		t.Fatalf("Compress(%s) failed: %v", algo, err)
	}

	recovered, err := Decompress(algo, compressed, int64(len(plain)))
	if err != nil {
		t.Fatalf("Decompress(%s) failed: %v", algo, err)
	}
	if !bytes.Equal(recovered, plain) {
		t.Errorf("round trip mismatch for %s", algo)
	}
}

func TestRoundTripDeflate(t *testing.T) {
	plain := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 200))
	for _, level := range []int{MinLevel, 1, 5, MaxLevel} {
		roundTrip(t, AlgorithmDeflate, level, plain)
	}
}

func TestRoundTripLZMA(t *testing.T) {
	plain := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 200))
	for _, level := range []int{MinLevel, 1, 5, MaxLevel} {
		roundTrip(t, AlgorithmLZMA, level, plain)
	}
}

func TestRoundTripEmptyPayload(t *testing.T) {
	roundTrip(t, AlgorithmDeflate, 6, []byte{})
	roundTrip(t, AlgorithmLZMA, 6, []byte{})
}

func TestCompressRejectsInvalidLevel(t *testing.T) {
	if _, err := Compress(AlgorithmDeflate, -1, []byte("x")); err == nil {
		t.Error("expected error for negative level")
	}
	if _, err := Compress(AlgorithmDeflate, MaxLevel+1, []byte("x")); err == nil {
		t.Error("expected error for level above max")
	}
}

func TestCompressRejectsUnknownAlgorithm(t *testing.T) {
	if _, err := Compress(Algorithm(99), 5, []byte("x")); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestDecompressDetectsShortOutput(t *testing.T) {
	compressed, err := Compress(AlgorithmDeflate, 5, []byte("short"))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	_, err = Decompress(AlgorithmDeflate, compressed, 100)
	if err == nil {
		t.Fatal("expected DecompressShort error")
	}
	if !errors.Is(err, slamerrors.ErrDecompress) {
		t.Errorf("error should wrap ErrDecompress: %v", err)
	}
}

func TestDecompressDetectsOverflow(t *testing.T) {
	plain := []byte(strings.Repeat("abc", 50))
	compressed, err := Compress(AlgorithmDeflate, 5, plain)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	_, err = Decompress(AlgorithmDeflate, compressed, int64(len(plain)-1))
	if err == nil {
		t.Fatal("expected DecompressOverflow error")
	}
	if !errors.Is(err, slamerrors.ErrDecompress) {
		t.Errorf("error should wrap ErrDecompress: %v", err)
	}
}

func TestAlgorithmValidAndString(t *testing.T) {
	if !AlgorithmDeflate.Valid() || !AlgorithmLZMA.Valid() {
		t.Error("known algorithms should be valid")
	}
	if Algorithm(0).Valid() || Algorithm(3).Valid() {
		t.Error("unknown algorithms should not be valid")
	}
	if AlgorithmDeflate.String() != "deflate" {
		t.Errorf("String() = %q", AlgorithmDeflate.String())
	}
	if !strings.Contains(Algorithm(99).String(), "unknown") {
		t.Errorf("String() for unknown = %q", Algorithm(99).String())
	}
}
