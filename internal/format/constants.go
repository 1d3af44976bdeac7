// Package format implements the archive's on-disk byte layout: the fixed
// ArchiveHeader and FileEntry records, explicit little-endian packing (no
// implicit struct padding), and the path-traversal validation rule shared by
// every consumer of decrypted filenames.
package format

// Magic identifies an slam archive.
var Magic = [4]byte{'S', 'L', 'M', 0}

// Format-level size limits, part of the on-disk contract.
const (
	MaxFiles         = 1000
	MaxFileSize      = 10 * (1 << 30) // 10 GiB
	MaxFilename      = 256
	MaxOutdir        = 320
	MaxCommentRegion = 512

	AESKeySize   = 32
	AESNonceSize = 12
	AESTagSize   = 16
	HMACSize     = 32
	SaltSize     = 16

	PBKDF2Iterations = 1_000_000
)

// Versions this implementation understands. Readers accept any of
// MinReadVersion..MaxReadVersion; writers always emit CurrentVersion.
const (
	MinReadVersion = 4
	MaxReadVersion = 6
	CurrentVersion = 6
)

// Compression algorithm enum, as stored in ArchiveHeader.CompressionAlgo.
const (
	CompressionDeflate = 1
	CompressionLZMA    = 2
)

// encryptedRegionOverhead is the fixed per-field overhead (nonce + tag) for
// the comment and outdir encrypted regions, beyond the ciphertext itself.
const encryptedRegionOverhead = AESNonceSize + AESTagSize // 28

// CommentPlainMax and OutdirPlainMax are the largest plaintexts that fit in
// their respective fixed-size encrypted regions.
const (
	CommentPlainMax = MaxCommentRegion - encryptedRegionOverhead // 484
	OutdirPlainMax  = MaxOutdir - encryptedRegionOverhead        // 292
)
