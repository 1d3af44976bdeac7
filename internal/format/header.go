package format

import (
	"encoding/binary"
	"errors"
	"fmt"

	"slam/internal/slamerrors"
)

// HeaderSize is the fixed, serialized size of ArchiveHeader in bytes.
const HeaderSize = 4 + 1 + 1 + 1 + 1 + 4 + 4 + 4 + SaltSize + MaxCommentRegion + MaxOutdir + HMACSize

// hmacOffset is where the trailing hmac field begins; HMAC is computed over
// everything before it.
const hmacOffset = HeaderSize - HMACSize

// ArchiveHeader is the fixed-size record at the start of every archive.
type ArchiveHeader struct {
	Version          uint8
	CompressionAlgo  uint8
	CompressionLevel uint8
	FileCount        uint32
	CommentLen       uint32 // ciphertext length of the encrypted comment, 0 if absent
	OutdirLen        uint32 // ciphertext length of the encrypted outdir, 0 if absent (v6+ only)
	Salt             [SaltSize]byte
	CommentRegion    [MaxCommentRegion]byte
	OutdirRegion     [MaxOutdir]byte
	HMAC             [HMACSize]byte
}

// EncryptedRegion holds the decoded constituents of a packed
// [ciphertext || nonce || tag] encrypted region.
type EncryptedRegion struct {
	Ciphertext []byte
	Nonce      [AESNonceSize]byte
	Tag        [AESTagSize]byte
}

// PackRegion lays out ciphertext||nonce||tag at the front of a zero-padded
// byte slice of size regionSize. It returns an error if the inputs don't
// fit.
func PackRegion(regionSize int, ciphertext []byte, nonce, tag []byte) ([]byte, error) {
	if len(nonce) != AESNonceSize || len(tag) != AESTagSize {
		return nil, slamerrors.NewValidationError("nonce/tag", "size mismatch")
	}
	if len(ciphertext)+encryptedRegionOverhead > regionSize {
		return nil, fmt.Errorf("%w: plaintext too large for encrypted region", slamerrors.ErrResourceLimit)
	}

	region := make([]byte, regionSize)
	n := copy(region, ciphertext)
	n += copy(region[n:], nonce)
	copy(region[n:], tag)
	return region, nil
}

// UnpackRegion extracts ciphertext (of length ciphertextLen), nonce, and tag
// from a packed region produced by PackRegion.
func UnpackRegion(region []byte, ciphertextLen int) (ciphertext, nonce, tag []byte, err error) {
	need := ciphertextLen + encryptedRegionOverhead
	if ciphertextLen < 0 || need > len(region) {
		return nil, nil, nil, slamerrors.NewHeaderError("encrypted_region", errors.New("length out of bounds"))
	}

	ciphertext = region[:ciphertextLen]
	nonce = region[ciphertextLen : ciphertextLen+AESNonceSize]
	tag = region[ciphertextLen+AESNonceSize : ciphertextLen+AESNonceSize+AESTagSize]
	return ciphertext, nonce, tag, nil
}

// Serialize writes h into its exact HeaderSize-byte on-disk layout. The
// trailing HMAC field is included verbatim (callers compute it separately
// over SerializeUnauthenticated's output and set h.HMAC before calling
// Serialize for the final write).
func (h *ArchiveHeader) Serialize() []byte {
	buf := make([]byte, HeaderSize)
	n := copy(buf, Magic[:])

	buf[n] = h.Version
	n++
	buf[n] = h.CompressionAlgo
	n++
	buf[n] = h.CompressionLevel
	n++
	buf[n] = 0 // reserved_a
	n++

	binary.LittleEndian.PutUint32(buf[n:], h.FileCount)
	n += 4
	binary.LittleEndian.PutUint32(buf[n:], h.CommentLen)
	n += 4
	binary.LittleEndian.PutUint32(buf[n:], h.OutdirLen)
	n += 4

	n += copy(buf[n:], h.Salt[:])
	n += copy(buf[n:], h.CommentRegion[:])
	n += copy(buf[n:], h.OutdirRegion[:])
	copy(buf[n:], h.HMAC[:])

	return buf
}

// SerializeUnauthenticated returns the header bytes up to (but excluding)
// the HMAC field — exactly what the HMAC is computed over.
func (h *ArchiveHeader) SerializeUnauthenticated() []byte {
	return h.Serialize()[:hmacOffset]
}

// ParseHeader decodes an ArchiveHeader from exactly HeaderSize bytes,
// checking magic, version range, and count bound. Cryptographic
// authentication (HMAC, per-field AEAD) is the caller's responsibility.
func ParseHeader(buf []byte) (*ArchiveHeader, error) {
	if len(buf) != HeaderSize {
		return nil, fmt.Errorf("%w: expected %d header bytes, got %d", slamerrors.ErrIO, HeaderSize, len(buf))
	}

	var magic [4]byte
	copy(magic[:], buf[:4])
	if magic != Magic {
		return nil, slamerrors.NewHeaderError("magic", errors.New("bad magic"))
	}

	h := &ArchiveHeader{}
	n := 4

	h.Version = buf[n]
	n++
	if h.Version < MinReadVersion || h.Version > MaxReadVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", slamerrors.ErrVersionUnsupported, h.Version)
	}

	h.CompressionAlgo = buf[n]
	n++
	h.CompressionLevel = buf[n]
	n++
	n++ // reserved_a

	h.FileCount = binary.LittleEndian.Uint32(buf[n:])
	n += 4
	if h.FileCount > MaxFiles {
		return nil, fmt.Errorf("%w: file_count %d exceeds MAX_FILES", slamerrors.ErrResourceLimit, h.FileCount)
	}

	h.CommentLen = binary.LittleEndian.Uint32(buf[n:])
	n += 4
	h.OutdirLen = binary.LittleEndian.Uint32(buf[n:])
	n += 4

	n += copy(h.Salt[:], buf[n:])
	n += copy(h.CommentRegion[:], buf[n:])
	n += copy(h.OutdirRegion[:], buf[n:])
	copy(h.HMAC[:], buf[n:])

	// v4 legacy rule: the algorithm byte was not yet defined; hard-code LZMA.
	if h.Version == 4 {
		h.CompressionAlgo = CompressionLZMA
	} else if h.CompressionAlgo != CompressionDeflate && h.CompressionAlgo != CompressionLZMA {
		return nil, slamerrors.NewHeaderError("compression_algo", fmt.Errorf("unrecognized value %d", h.CompressionAlgo))
	}

	return h, nil
}

// SupportsOutdir reports whether this header's version stores an encrypted
// output directory (v6+ only).
func (h *ArchiveHeader) SupportsOutdir() bool {
	return h.Version >= 6
}
