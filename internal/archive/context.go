// Package archive implements the producer and consumer sides of the .slm
// container format: Pack (producer), and Unpack/List/ViewComment (consumer).
//
// Pack pipeline:
//  1. Validate request (counts, sizes, names, password policy)
//  2. Generate salt, derive file_key/meta_key
//  3. Build header, encrypt comment/outdir regions
//  4. Compress, encrypt, and frame each entry in order
//  5. Compute header HMAC under file_key
//  6. Write the archive (unless DryRun)
//  7. Zero key material on every exit path
//
// Unpack/List pipeline follows the consumer state machine: START ->
// HEADER_READ -> HEADER_AUTH_OK -> ENTRY_META_READ -> ENTRY_PAYLOAD_READ ->
// (loop) -> DONE, aborting on any authentication or I/O failure.
package archive

import (
	"slam/internal/keyschedule"
	"slam/internal/slamlog"
)

// Reporter receives progress updates during long-running pack/unpack
// operations. A nil Reporter disables progress reporting.
type Reporter interface {
	SetStatus(text string)
	SetProgress(done, total int64)
}

// Entry is one logical file supplied to Pack, already resolved, excluded,
// and canonicalized by the enumeration collaborator.
type Entry struct {
	Name  string // forward-slash relative path
	Mode  uint32 // POSIX permission bits
	Bytes []byte // plaintext contents
}

// PackOptions configures a Pack operation.
type PackOptions struct {
	CompressionAlgo  uint8
	CompressionLevel int
	Comment          string
	OutDir           string // stored output directory, v6+, "" if absent
	DryRun           bool
	Overwrite        bool
	Reporter         Reporter
}

// UnpackOptions configures an Unpack operation.
type UnpackOptions struct {
	TargetDir string // caller-supplied extraction directory; "" defers to header/outdir/cwd
	Overwrite bool
	Reporter  Reporter
}

// operationContext holds the mutable state threaded through a single pack
// operation. Close must run on every exit path.
type operationContext struct {
	keys *keyschedule.Keys
}

func (ctx *operationContext) close() {
	if ctx == nil {
		return
	}
	ctx.keys.Close()
}

func logStatus(r Reporter, status string) {
	if r != nil {
		r.SetStatus(status)
	}
	slamlog.Debug(status)
}
