package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"slam/internal/codec"
	"slam/internal/format"
	"slam/internal/fsutil"
	"slam/internal/keyschedule"
	"slam/internal/primitives"
	"slam/internal/slamerrors"
	"slam/internal/slamlog"
)

// Unpack extracts every entry from the archive at archivePath into the
// chosen extraction directory, following the shared consumer prelude and
// then the unpacker-specific steps in spec order.
func Unpack(archivePath, password string, opts UnpackOptions) error {
	f, header, keys, err := openAndAuthenticate(archivePath, password)
	if err != nil {
		return err
	}
	defer f.Close()
	defer keys.Close()

	extractDir, err := resolveExtractDir(header, keys, opts.TargetDir)
	if err != nil {
		return err
	}

	logStatus(opts.Reporter, fmt.Sprintf("unpacking %d entries to %s", header.FileCount, extractDir))

	for i := uint32(0); i < header.FileCount; i++ {
		if err := unpackOneEntry(f, header, keys, extractDir, int(i), opts); err != nil {
			return err
		}
		if opts.Reporter != nil {
			opts.Reporter.SetProgress(int64(i+1), int64(header.FileCount))
		}
	}

	return nil
}

// resolveExtractDir picks the extraction directory in priority order:
// caller-supplied > v6+ decrypted stored-outdir > current directory. A
// caller-supplied directory that fails its stat check falls back to the
// current directory; a stored-outdir that fails to decrypt is fatal.
func resolveExtractDir(header *format.ArchiveHeader, keys *keyschedule.Keys, callerDir string) (string, error) {
	if callerDir != "" {
		if info, err := os.Stat(callerDir); err == nil && info.IsDir() {
			return callerDir, nil
		}
		return ".", nil
	}

	if header.SupportsOutdir() && header.OutdirLen > 0 {
		outdir, err := decryptRegion(keys.MetaKey.Bytes(), header.OutdirRegion[:], int(header.OutdirLen))
		if err != nil {
			return "", err
		}
		if err := format.ValidatePath(outdir); err != nil {
			return "", err
		}
		if info, err := os.Stat(outdir); err == nil && info.IsDir() {
			return outdir, nil
		}
		return ".", nil
	}

	return ".", nil
}

func unpackOneEntry(f *os.File, header *format.ArchiveHeader, keys *keyschedule.Keys, extractDir string, index int, opts UnpackOptions) error {
	recordBuf := make([]byte, format.FileEntryRecordSize)
	if _, err := readExact(f, recordBuf); err != nil {
		return err
	}

	nonce, tag, ciphertext, err := format.UnpackFileEntryRecord(recordBuf)
	if err != nil {
		return err
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)

	plainBytes, err := primitives.Open(keys.MetaKey.Bytes(), nonce, sealed, nil)
	if err != nil {
		return slamerrors.NewEntryError(index, "", "decrypt-metadata", slamerrors.ErrEntryAuthFail)
	}

	plain, err := format.ParseFileEntryPlain(plainBytes)
	if err != nil {
		return slamerrors.NewEntryError(index, "", "parse-metadata", err)
	}
	if err := format.ValidateEntry(plain); err != nil {
		return slamerrors.NewEntryError(index, plain.Name(), "validate", err)
	}

	name := plain.Name()
	target := filepath.Join(extractDir, name)

	if !opts.Overwrite {
		if _, err := os.Stat(target); err == nil {
			return slamerrors.NewEntryError(index, name, "stat", slamerrors.ErrDestinationExists)
		}
	}

	if err := fsutil.EnsureParentDirs(target); err != nil {
		return slamerrors.NewEntryError(index, name, "mkdir", err)
	}

	if plain.OriginalSize == 0 {
		if err := os.WriteFile(target, nil, os.FileMode(plain.Mode&0o777)); err != nil {
			return slamerrors.NewEntryError(index, name, "write", err)
		}
		return nil
	}

	frameHeader := make([]byte, primitives.NonceSize+primitives.TagSize)
	if _, err := readExact(f, frameHeader); err != nil {
		return err
	}
	fileNonce := frameHeader[:primitives.NonceSize]
	fileTag := frameHeader[primitives.NonceSize:]

	payload := make([]byte, plain.CompressedSize)
	if _, err := readExact(f, payload); err != nil {
		return err
	}

	sealedPayload := append(append([]byte{}, payload...), fileTag...)
	comp, err := primitives.Open(keys.FileKey.Bytes(), fileNonce, sealedPayload, nil)
	if err != nil {
		return slamerrors.NewEntryError(index, name, "decrypt-payload", slamerrors.ErrEntryAuthFail)
	}

	plaintext, err := codec.Decompress(codec.Algorithm(header.CompressionAlgo), comp, int64(plain.OriginalSize))
	if err != nil {
		return slamerrors.NewEntryError(index, name, "decompress", err)
	}

	if err := os.WriteFile(target, plaintext, os.FileMode(plain.Mode&0o777)); err != nil {
		return slamerrors.NewEntryError(index, name, "write", err)
	}
	if err := os.Chmod(target, os.FileMode(plain.Mode&0o777)); err != nil {
		slamlog.Warn("permission restore failed", slamlog.String("file", name), slamlog.Err(err))
	}

	return nil
}
