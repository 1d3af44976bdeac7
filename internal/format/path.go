package format

import (
	"strings"

	"slam/internal/slamerrors"
)

// ValidatePath rejects name if any of the following hold:
//   - it contains the substring "../"
//   - it contains the substring "..\"
//   - it equals ".." exactly
//   - after stripping a single leading '/', it starts with ".." followed by
//     end-of-string or '/'
//
// The rule is applied both to entry filenames and to any decoded
// stored-outdir string, since both are attacker-controllable once a
// password is known.
func ValidatePath(name string) error {
	if strings.Contains(name, "../") {
		return slamerrors.NewPathError(name, `contains "../"`)
	}
	if strings.Contains(name, `..\`) {
		return slamerrors.NewPathError(name, `contains "..\"`)
	}
	if name == ".." {
		return slamerrors.NewPathError(name, `is exactly ".."`)
	}

	stripped := strings.TrimPrefix(name, "/")
	if strings.HasPrefix(stripped, "..") {
		rest := stripped[2:]
		if rest == "" || strings.HasPrefix(rest, "/") {
			return slamerrors.NewPathError(name, "escapes the extraction root")
		}
	}

	return nil
}
