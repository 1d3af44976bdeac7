// Package codec implements the payload compression algorithms the archive
// format supports: DEFLATE and LZMA. Decompression enforces a
// caller-declared output size so a corrupt or hostile entry cannot be
// decompressed into unbounded memory.
package codec

import (
	"fmt"
	"io"

	"slam/internal/slamerrors"
)

// Algorithm identifies a compression algorithm by its on-disk enum value.
type Algorithm uint8

const (
	AlgorithmDeflate Algorithm = 1
	AlgorithmLZMA    Algorithm = 2
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDeflate:
		return "deflate"
	case AlgorithmLZMA:
		return "lzma"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// Valid reports whether a is a recognized algorithm.
func (a Algorithm) Valid() bool {
	return a == AlgorithmDeflate || a == AlgorithmLZMA
}

// MinLevel and MaxLevel bound the compression_level header field, shared
// across both algorithms (LZMA maps it onto its own preset scale).
const (
	MinLevel = 0
	MaxLevel = 9
)

// Compress compresses plain using algo at level, returning the compressed
// bytes.
func Compress(algo Algorithm, level int, plain []byte) ([]byte, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("%w: compression level %d out of range [%d,%d]", slamerrors.ErrCompress, level, MinLevel, MaxLevel)
	}

	switch algo {
	case AlgorithmDeflate:
		return compressDeflate(level, plain)
	case AlgorithmLZMA:
		return compressLZMA(level, plain)
	default:
		return nil, fmt.Errorf("%w: unsupported compression algorithm %d", slamerrors.ErrCompress, uint8(algo))
	}
}

// Decompress decompresses compressed (produced by algo) into exactly
// declaredSize bytes. It returns DecompressOverflow if the stream produces
// more than declaredSize bytes, and DecompressShort if the stream ends with
// fewer.
func Decompress(algo Algorithm, compressed []byte, declaredSize int64) ([]byte, error) {
	switch algo {
	case AlgorithmDeflate:
		return decompressDeflate(compressed, declaredSize)
	case AlgorithmLZMA:
		return decompressLZMA(compressed, declaredSize)
	default:
		return nil, fmt.Errorf("%w: unsupported compression algorithm %d", slamerrors.ErrDecompress, uint8(algo))
	}
}

// boundedRead reads exactly declaredSize bytes from r, then confirms the
// stream has no further bytes to yield (DecompressOverflow) and that it did
// not end early (DecompressShort).
func boundedRead(r io.Reader, declaredSize int64) ([]byte, error) {
	if declaredSize < 0 {
		return nil, fmt.Errorf("%w: negative declared size", slamerrors.ErrDecompress)
	}

	out := make([]byte, declaredSize)
	n, err := io.ReadFull(r, out)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: %v", slamerrors.ErrDecompress, err)
	}
	if int64(n) < declaredSize {
		return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d (DecompressShort)", slamerrors.ErrDecompress, n, declaredSize)
	}

	// Confirm the stream doesn't yield more than declared: any further byte
	// means the on-disk declared size understates the true output.
	var extra [1]byte
	if m, _ := r.Read(extra[:]); m > 0 {
		return nil, fmt.Errorf("%w: decompressed output exceeds declared size %d (DecompressOverflow)", slamerrors.ErrDecompress, declaredSize)
	}

	return out, nil
}
