package codec

import (
	"bytes"
	"compress/zlib"
	"fmt"

	"slam/internal/slamerrors"
)

func compressDeflate(level int, plain []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("%w: deflate: %v", slamerrors.ErrCompress, err)
	}
	if _, err := w.Write(plain); err != nil {
		return nil, fmt.Errorf("%w: deflate: %v", slamerrors.ErrCompress, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: deflate: %v", slamerrors.ErrCompress, err)
	}

	return buf.Bytes(), nil
}

func decompressDeflate(compressed []byte, declaredSize int64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: deflate: %v", slamerrors.ErrDecompress, err)
	}
	defer r.Close()

	return boundedRead(r, declaredSize)
}
