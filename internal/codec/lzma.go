package codec

import (
	"bytes"
	"fmt"

	"github.com/ulikunitz/xz/lzma"

	"slam/internal/slamerrors"
)

// lzmaPreset maps the shared 0-9 compression_level scale onto the
// dictionary sizes lzma.WriterConfig exposes, mirroring gzip/flate's own
// level convention (higher means smaller output, more CPU).
func lzmaPreset(level int) lzma.WriterConfig {
	var dictSize int
	switch {
	case level <= 1:
		dictSize = 1 << 16 // 64 KiB
	case level <= 3:
		dictSize = 1 << 20 // 1 MiB
	case level <= 6:
		dictSize = 1 << 22 // 4 MiB
	default:
		dictSize = 1 << 24 // 16 MiB
	}
	return lzma.WriterConfig{DictCap: dictSize}
}

func compressLZMA(level int, plain []byte) ([]byte, error) {
	var buf bytes.Buffer

	cfg := lzmaPreset(level)
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", slamerrors.ErrCompress, err)
	}
	if _, err := w.Write(plain); err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", slamerrors.ErrCompress, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", slamerrors.ErrCompress, err)
	}

	return buf.Bytes(), nil
}

func decompressLZMA(compressed []byte, declaredSize int64) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", slamerrors.ErrDecompress, err)
	}

	return boundedRead(r, declaredSize)
}
