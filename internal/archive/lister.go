package archive

import (
	"io"
	"os"

	"slam/internal/format"
	"slam/internal/keyschedule"
	"slam/internal/primitives"
	"slam/internal/slamerrors"
)

// ListedEntry describes one archive entry as reported by List.
type ListedEntry struct {
	Name         string
	Mode         uint32
	OriginalSize uint64
}

// List walks the archive's metadata records without touching any payload
// bytes, returning one ListedEntry per successfully authenticated entry. It
// stops at the first metadata authentication failure — compressed_size from
// an unauthenticated record cannot be trusted to skip forward correctly —
// and returns the error alongside whatever entries were already collected.
func List(archivePath, password string) ([]ListedEntry, error) {
	f, header, keys, err := openAndAuthenticate(archivePath, password)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer keys.Close()

	entries := make([]ListedEntry, 0, header.FileCount)

	for i := uint32(0); i < header.FileCount; i++ {
		entry, compressedSize, err := listOneEntry(f, keys, int(i))
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)

		if compressedSize > 0 {
			skip := int64(compressedSize) + int64(primitives.NonceSize) + int64(primitives.TagSize)
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return entries, slamerrors.NewIoError("seek", archivePath, err)
			}
		}
	}

	return entries, nil
}

func listOneEntry(f *os.File, keys *keyschedule.Keys, index int) (ListedEntry, uint64, error) {
	recordBuf := make([]byte, format.FileEntryRecordSize)
	if _, err := readExact(f, recordBuf); err != nil {
		return ListedEntry{}, 0, err
	}

	nonce, tag, ciphertext, err := format.UnpackFileEntryRecord(recordBuf)
	if err != nil {
		return ListedEntry{}, 0, err
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)

	plainBytes, err := primitives.Open(keys.MetaKey.Bytes(), nonce, sealed, nil)
	if err != nil {
		return ListedEntry{}, 0, slamerrors.NewEntryError(index, "", "decrypt-metadata", slamerrors.ErrEntryAuthFail)
	}

	plain, err := format.ParseFileEntryPlain(plainBytes)
	if err != nil {
		return ListedEntry{}, 0, slamerrors.NewEntryError(index, "", "parse-metadata", err)
	}
	if err := format.ValidateEntry(plain); err != nil {
		return ListedEntry{}, 0, slamerrors.NewEntryError(index, plain.Name(), "validate", err)
	}

	return ListedEntry{
		Name:         plain.Name(),
		Mode:         plain.Mode,
		OriginalSize: plain.OriginalSize,
	}, plain.CompressedSize, nil
}

// ViewComment decrypts and returns the archive's stored comment, if any.
func ViewComment(archivePath, password string) (string, error) {
	f, header, keys, err := openAndAuthenticate(archivePath, password)
	if err != nil {
		return "", err
	}
	defer f.Close()
	defer keys.Close()

	if header.CommentLen == 0 {
		return "", nil
	}

	return decryptRegion(keys.MetaKey.Bytes(), header.CommentRegion[:], int(header.CommentLen))
}
