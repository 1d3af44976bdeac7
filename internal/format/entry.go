package format

import (
	"encoding/binary"
	"fmt"

	"slam/internal/slamerrors"
)

// FileEntryPlainSize is the fixed, serialized size of FileEntryPlain.
const FileEntryPlainSize = MaxFilename + 8 + 8 + 4 + 4 // 280

// FileEntryRecordSize is the fixed on-disk size of a FileEntry record
// (nonce || tag || encrypted FileEntryPlain).
const FileEntryRecordSize = AESNonceSize + AESTagSize + FileEntryPlainSize

// FileEntryPlain is the decrypted per-file metadata record.
type FileEntryPlain struct {
	Filename       [MaxFilename]byte // NUL-terminated relative path
	CompressedSize uint64
	OriginalSize   uint64
	Mode           uint32 // POSIX permission bits, low 12 bits meaningful
}

// NewFileEntryPlain builds a FileEntryPlain for name, failing if name (plus
// its NUL terminator) does not fit in MaxFilename bytes.
func NewFileEntryPlain(name string, compressedSize, originalSize uint64, mode uint32) (*FileEntryPlain, error) {
	if len(name) == 0 {
		return nil, slamerrors.NewValidationError("filename", "must not be empty")
	}
	if len(name) > MaxFilename-1 {
		return nil, slamerrors.NewValidationError("filename", fmt.Sprintf("exceeds %d bytes", MaxFilename-1))
	}

	e := &FileEntryPlain{
		CompressedSize: compressedSize,
		OriginalSize:   originalSize,
		Mode:           mode,
	}
	copy(e.Filename[:], name)
	// e.Filename is zero-initialized, so the byte after name is already the
	// required NUL terminator.

	return e, nil
}

// Name returns the filename up to (but excluding) its NUL terminator.
func (e *FileEntryPlain) Name() string {
	n := 0
	for n < len(e.Filename) && e.Filename[n] != 0 {
		n++
	}
	return string(e.Filename[:n])
}

// Serialize encodes e into its fixed FileEntryPlainSize-byte layout.
func (e *FileEntryPlain) Serialize() []byte {
	buf := make([]byte, FileEntryPlainSize)
	n := copy(buf, e.Filename[:])
	binary.LittleEndian.PutUint64(buf[n:], e.CompressedSize)
	n += 8
	binary.LittleEndian.PutUint64(buf[n:], e.OriginalSize)
	n += 8
	binary.LittleEndian.PutUint32(buf[n:], e.Mode)
	n += 4
	// reserved (4 bytes), left zero

	return buf
}

// ParseFileEntryPlain decodes a FileEntryPlain from exactly
// FileEntryPlainSize bytes. Semantic invariants (NUL termination, traversal,
// size relationships) are validated separately by ValidateEntry.
func ParseFileEntryPlain(buf []byte) (*FileEntryPlain, error) {
	if len(buf) != FileEntryPlainSize {
		return nil, slamerrors.NewValidationError("metadata", fmt.Sprintf("expected %d bytes, got %d", FileEntryPlainSize, len(buf)))
	}

	e := &FileEntryPlain{}
	n := copy(e.Filename[:], buf[:MaxFilename])
	e.CompressedSize = binary.LittleEndian.Uint64(buf[n:])
	n += 8
	e.OriginalSize = binary.LittleEndian.Uint64(buf[n:])
	n += 8
	e.Mode = binary.LittleEndian.Uint32(buf[n:])

	return e, nil
}

// ValidateEntry checks the invariants a decrypted FileEntryPlain MUST
// satisfy: NUL-terminated filename, no traversal, and the size relationships
// required by the format.
func ValidateEntry(e *FileEntryPlain) error {
	if e.Filename[MaxFilename-1] != 0 {
		return slamerrors.NewValidationError("filename", "not NUL-terminated")
	}

	name := e.Name()
	if err := ValidatePath(name); err != nil {
		return err
	}

	if e.CompressedSize > 0 && e.OriginalSize == 0 {
		return slamerrors.NewValidationError("original_size", "compressed_size > 0 but original_size == 0")
	}
	if e.OriginalSize > MaxFileSize {
		return fmt.Errorf("%w: original_size %d exceeds MAX_FILE_SIZE", slamerrors.ErrResourceLimit, e.OriginalSize)
	}

	return nil
}

// PackFileEntryRecord lays out a FileEntry on-disk record:
// nonce || tag || ciphertext.
func PackFileEntryRecord(nonce, tag, ciphertext []byte) ([]byte, error) {
	if len(nonce) != AESNonceSize || len(tag) != AESTagSize {
		return nil, slamerrors.NewValidationError("nonce/tag", "size mismatch")
	}
	if len(ciphertext) != FileEntryPlainSize {
		return nil, slamerrors.NewValidationError("ciphertext", "unexpected metadata ciphertext length")
	}

	buf := make([]byte, FileEntryRecordSize)
	n := copy(buf, nonce)
	n += copy(buf[n:], tag)
	copy(buf[n:], ciphertext)
	return buf, nil
}

// UnpackFileEntryRecord splits a raw FileEntryRecordSize-byte record into
// its nonce, tag, and ciphertext constituents.
func UnpackFileEntryRecord(buf []byte) (nonce, tag, ciphertext []byte, err error) {
	if len(buf) != FileEntryRecordSize {
		return nil, nil, nil, fmt.Errorf("%w: expected %d entry bytes, got %d", slamerrors.ErrIO, FileEntryRecordSize, len(buf))
	}
	nonce = buf[:AESNonceSize]
	tag = buf[AESNonceSize : AESNonceSize+AESTagSize]
	ciphertext = buf[AESNonceSize+AESTagSize:]
	return nonce, tag, ciphertext, nil
}
