package archive

import (
	"fmt"

	"slam/internal/codec"
	"slam/internal/format"
	"slam/internal/slamerrors"
)

// PasswordPolicy is the collaborator contract for password strength
// acceptance: accept_password(pw, allow_weak_flag) -> bool.
type PasswordPolicy interface {
	Accept(password string, allowWeak bool) bool
}

// validatePackInput checks the packer's preconditions before any
// randomness is generated or bytes are written.
func validatePackInput(entries []Entry, opts PackOptions) error {
	if len(entries) > format.MaxFiles {
		return fmt.Errorf("%w: %d entries exceeds MAX_FILES (%d)", slamerrors.ErrResourceLimit, len(entries), format.MaxFiles)
	}

	for _, e := range entries {
		if len(e.Bytes) > format.MaxFileSize {
			return fmt.Errorf("%w: entry %q size %d exceeds MAX_FILE_SIZE", slamerrors.ErrResourceLimit, e.Name, len(e.Bytes))
		}
		if len(e.Name) == 0 {
			return slamerrors.NewValidationError("name", "entry name must not be empty")
		}
		if len(e.Name) > format.MaxFilename-1 {
			return slamerrors.NewValidationError("name", fmt.Sprintf("entry name %q exceeds %d bytes", e.Name, format.MaxFilename-1))
		}
		if err := format.ValidatePath(e.Name); err != nil {
			return err
		}
	}

	if opts.CompressionLevel < codec.MinLevel || opts.CompressionLevel > codec.MaxLevel {
		return slamerrors.NewValidationError("compression_level", fmt.Sprintf("%d out of range", opts.CompressionLevel))
	}
	if !codec.Algorithm(opts.CompressionAlgo).Valid() {
		return slamerrors.NewValidationError("compression_algo", fmt.Sprintf("unsupported value %d", opts.CompressionAlgo))
	}
	if len(opts.Comment) > format.CommentPlainMax {
		return fmt.Errorf("%w: comment exceeds %d bytes", slamerrors.ErrResourceLimit, format.CommentPlainMax)
	}
	if len(opts.OutDir) > format.OutdirPlainMax {
		return fmt.Errorf("%w: outdir exceeds %d bytes", slamerrors.ErrResourceLimit, format.OutdirPlainMax)
	}
	if opts.OutDir != "" {
		if err := format.ValidatePath(opts.OutDir); err != nil {
			return err
		}
	}

	return nil
}
