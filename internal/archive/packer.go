package archive

import (
	"fmt"
	"io"
	"os"

	"slam/internal/codec"
	"slam/internal/format"
	"slam/internal/keyschedule"
	"slam/internal/primitives"
	"slam/internal/slamerrors"
	"slam/internal/slamlog"
)

// Pack produces an archive at archivePath from entries under password,
// following opts. policy, if non-nil, gates the password against the
// strength-policy collaborator before anything is written.
//
// Phase pipeline: validate -> derive keys -> build header -> encrypt
// entries -> finalize header HMAC -> write (unless DryRun).
func Pack(archivePath, password string, entries []Entry, opts PackOptions, policy PasswordPolicy) error {
	if policy != nil && !policy.Accept(password, false) {
		return slamerrors.NewValidationError("password", "rejected by policy")
	}
	if err := validatePackInput(entries, opts); err != nil {
		return err
	}
	if !opts.Overwrite {
		if _, err := os.Stat(archivePath); err == nil {
			return fmt.Errorf("%w: %s", slamerrors.ErrDestinationExists, archivePath)
		}
	}

	ctx := &operationContext{}
	defer ctx.close()

	salt, err := primitives.RandomBytes(format.SaltSize)
	if err != nil {
		return fmt.Errorf("%w: %v", slamerrors.ErrCryptoUnavailable, err)
	}
	keys, err := keyschedule.Derive([]byte(password), salt)
	if err != nil {
		return fmt.Errorf("%w: %v", slamerrors.ErrCryptoUnavailable, err)
	}
	ctx.keys = keys

	header := &format.ArchiveHeader{
		Version:          format.CurrentVersion,
		CompressionAlgo:  opts.CompressionAlgo,
		CompressionLevel: uint8(opts.CompressionLevel),
		FileCount:        uint32(len(entries)),
	}
	copy(header.Salt[:], salt)

	if err := packEncryptedFields(header, opts, keys); err != nil {
		return err
	}

	logStatus(opts.Reporter, fmt.Sprintf("packing %d entries", len(entries)))

	entryRecords, payloadFrames, err := packEntries(entries, opts, keys)
	if err != nil {
		return err
	}

	unauthenticated := header.SerializeUnauthenticated()
	tag := primitives.HeaderHMAC(keys.FileKey.Bytes(), unauthenticated)
	copy(header.HMAC[:], tag)

	if opts.DryRun {
		slamlog.Debug("dry run complete, no output written")
		return nil
	}

	return writeArchive(archivePath, header, entryRecords, payloadFrames)
}

// packEncryptedFields seals the optional comment and stored-outdir strings
// into their fixed header regions under meta_key.
func packEncryptedFields(header *format.ArchiveHeader, opts PackOptions, keys *keyschedule.Keys) error {
	if opts.Comment != "" {
		nonce, ciphertext, err := primitives.Seal(keys.MetaKey.Bytes(), []byte(opts.Comment), nil)
		if err != nil {
			return fmt.Errorf("%w: comment: %v", slamerrors.ErrCryptoUnavailable, err)
		}
		tag := ciphertext[len(ciphertext)-primitives.TagSize:]
		ct := ciphertext[:len(ciphertext)-primitives.TagSize]

		region, err := format.PackRegion(format.MaxCommentRegion, ct, nonce, tag)
		if err != nil {
			return err
		}
		copy(header.CommentRegion[:], region)
		header.CommentLen = uint32(len(ct))
	}

	if opts.OutDir != "" {
		nonce, ciphertext, err := primitives.Seal(keys.MetaKey.Bytes(), []byte(opts.OutDir), nil)
		if err != nil {
			return fmt.Errorf("%w: outdir: %v", slamerrors.ErrCryptoUnavailable, err)
		}
		tag := ciphertext[len(ciphertext)-primitives.TagSize:]
		ct := ciphertext[:len(ciphertext)-primitives.TagSize]

		region, err := format.PackRegion(format.MaxOutdir, ct, nonce, tag)
		if err != nil {
			return err
		}
		copy(header.OutdirRegion[:], region)
		header.OutdirLen = uint32(len(ct))
	}

	return nil
}

// packEntries compresses, encrypts, and frames every entry in input order,
// returning the serialized FileEntry records and their payload frames
// (nil payload for zero-byte entries).
func packEntries(entries []Entry, opts PackOptions, keys *keyschedule.Keys) (records [][]byte, payloads [][]byte, err error) {
	records = make([][]byte, len(entries))
	payloads = make([][]byte, len(entries))

	for i, e := range entries {
		// A zero-byte entry is stored with compressed_size == 0 and no payload.
		var comp []byte
		if len(e.Bytes) > 0 {
			c, err := codec.Compress(codec.Algorithm(opts.CompressionAlgo), opts.CompressionLevel, e.Bytes)
			if err != nil {
				return nil, nil, slamerrors.NewEntryError(i, e.Name, "compress", err)
			}
			comp = c
		}

		plain, err := format.NewFileEntryPlain(e.Name, uint64(len(comp)), uint64(len(e.Bytes)), e.Mode)
		if err != nil {
			return nil, nil, slamerrors.NewEntryError(i, e.Name, "validate", err)
		}

		metaNonce, metaCiphertext, err := primitives.Seal(keys.MetaKey.Bytes(), plain.Serialize(), nil)
		if err != nil {
			return nil, nil, slamerrors.NewEntryError(i, e.Name, "encrypt-metadata", err)
		}
		metaTag := metaCiphertext[len(metaCiphertext)-primitives.TagSize:]
		metaCT := metaCiphertext[:len(metaCiphertext)-primitives.TagSize]

		record, err := format.PackFileEntryRecord(metaNonce, metaTag, metaCT)
		if err != nil {
			return nil, nil, slamerrors.NewEntryError(i, e.Name, "frame-metadata", err)
		}
		records[i] = record

		if len(e.Bytes) == 0 {
			continue
		}

		fileNonce, fileCiphertext, err := primitives.Seal(keys.FileKey.Bytes(), comp, nil)
		if err != nil {
			return nil, nil, slamerrors.NewEntryError(i, e.Name, "encrypt-payload", err)
		}
		fileTag := fileCiphertext[len(fileCiphertext)-primitives.TagSize:]
		fileCT := fileCiphertext[:len(fileCiphertext)-primitives.TagSize]

		frame := make([]byte, 0, len(fileNonce)+len(fileTag)+len(fileCT))
		frame = append(frame, fileNonce...)
		frame = append(frame, fileTag...)
		frame = append(frame, fileCT...)
		payloads[i] = frame
	}

	return records, payloads, nil
}

func writeArchive(archivePath string, header *format.ArchiveHeader, records, payloads [][]byte) error {
	f, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return slamerrors.NewIoError("create", archivePath, err)
	}
	defer f.Close()

	if err := writeAll(f, archivePath, header.Serialize()); err != nil {
		return err
	}
	for i, record := range records {
		if err := writeAll(f, archivePath, record); err != nil {
			return err
		}
		if payloads[i] != nil {
			if err := writeAll(f, archivePath, payloads[i]); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeAll(w io.Writer, path string, buf []byte) error {
	if _, err := w.Write(buf); err != nil {
		return slamerrors.NewIoError("write", path, err)
	}
	return nil
}
