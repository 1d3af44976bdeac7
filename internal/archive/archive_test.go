package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"slam/internal/codec"
	"slam/internal/format"
	"slam/internal/slamerrors"
)

func packOpts() PackOptions {
	return PackOptions{
		CompressionAlgo:  uint8(codec.AlgorithmLZMA),
		CompressionLevel: 1,
		Overwrite:        true,
	}
}

func TestPackListEmptyArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "empty.slm")

	if err := Pack(archivePath, "Correct_Horse1!", nil, packOpts(), nil); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() != format.HeaderSize {
		t.Errorf("empty archive size = %d; want %d (sizeof ArchiveHeader)", info.Size(), format.HeaderSize)
	}

	entries, err := List(archivePath, "Correct_Horse1!")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}

func TestPackUnpackSingleFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "single.slm")
	extractDir := filepath.Join(dir, "out")

	entries := []Entry{{Name: "hello.txt", Mode: 0o644, Bytes: []byte("hi\n")}}
	if err := Pack(archivePath, "Correct_Horse1!", entries, packOpts(), nil); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := Unpack(archivePath, "Correct_Horse1!", UnpackOptions{TargetDir: extractDir}); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(extractDir, "hello.txt"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hi\n" {
		t.Errorf("data = %q; want %q", data, "hi\n")
	}

	info, err := os.Stat(filepath.Join(extractDir, "hello.txt"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %o; want 0644", info.Mode().Perm())
	}
}

func TestUnpackWrongPassword(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.slm")

	entries := []Entry{{Name: "a.txt", Mode: 0o644, Bytes: []byte("data")}}
	if err := Pack(archivePath, "Pw#Aaaa1!", entries, packOpts(), nil); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	err := Unpack(archivePath, "Pw#Aaaa2!", UnpackOptions{TargetDir: dir})
	if !errors.Is(err, slamerrors.ErrHeaderAuthFail) {
		t.Fatalf("expected ErrHeaderAuthFail, got %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(dir, "a.txt")); statErr == nil {
		t.Error("no file should have been created on wrong-password failure")
	}
}

func TestPackRejectsPathTraversal(t *testing.T) {
	// A well-formed entry can never carry a traversing name (Pack validates
	// it), so this exercises the same ValidatePath rule the unpacker's
	// ValidateEntry relies on against a name that slips past
	// enumeration-time checks.
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.slm")

	entries := []Entry{{Name: "safe.txt", Mode: 0o644, Bytes: []byte("data")}}
	opts := packOpts()
	if err := Pack(archivePath, "Correct_Horse1!", entries, opts, nil); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	// Packer-side validation already rejects traversal; confirm it does so
	// directly against a crafted entry rather than a crafted on-disk file.
	bad := []Entry{{Name: "../evil", Mode: 0o644, Bytes: []byte("x")}}
	err := Pack(filepath.Join(dir, "bad.slm"), "Correct_Horse1!", bad, opts, nil)
	if !errors.Is(err, slamerrors.ErrPathTraversal) {
		t.Fatalf("expected ErrPathTraversal, got %v", err)
	}
}

func TestPackRejectsOverLimitEntries(t *testing.T) {
	dir := t.TempDir()
	entries := make([]Entry, 1001)
	for i := range entries {
		entries[i] = Entry{Name: "f", Mode: 0o644, Bytes: nil}
	}

	err := Pack(filepath.Join(dir, "x.slm"), "Correct_Horse1!", entries, packOpts(), nil)
	if !errors.Is(err, slamerrors.ErrResourceLimit) {
		t.Fatalf("expected ErrResourceLimit, got %v", err)
	}
}

func TestPackRefusesExistingOutputWithoutOverwrite(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.slm")

	opts := packOpts()
	opts.Overwrite = true
	if err := Pack(archivePath, "Correct_Horse1!", nil, opts, nil); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	opts.Overwrite = false
	err := Pack(archivePath, "Correct_Horse1!", nil, opts, nil)
	if !errors.Is(err, slamerrors.ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
}

func TestPackDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "dryrun.slm")

	opts := packOpts()
	opts.DryRun = true
	entries := []Entry{{Name: "a.txt", Mode: 0o644, Bytes: []byte("data")}}
	if err := Pack(archivePath, "Correct_Horse1!", entries, opts, nil); err != nil {
		t.Fatalf("Pack (dry run) failed: %v", err)
	}

	if _, err := os.Stat(archivePath); err == nil {
		t.Error("dry run should not create an output file")
	}
}

func TestPayloadTamperCausesEntryAuthFail(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.slm")

	entries := []Entry{{Name: "a.bin", Mode: 0o644, Bytes: []byte("0123456789abcdef0123456789abcdef")}}
	opts := packOpts()
	opts.CompressionAlgo = uint8(codec.AlgorithmDeflate)
	if err := Pack(archivePath, "Correct_Horse1!", entries, opts, nil); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	raw, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	// Flip a byte well past the header and metadata record, inside the
	// payload ciphertext region.
	raw[len(raw)-1] ^= 0xFF
	if err := os.WriteFile(archivePath, raw, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	err = Unpack(archivePath, "Correct_Horse1!", UnpackOptions{TargetDir: dir})
	if err == nil {
		t.Fatal("expected an authentication failure on tampered payload")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a.bin")); statErr == nil {
		t.Error("no output file should exist for a tampered entry")
	}
}

func TestViewCommentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "commented.slm")

	opts := packOpts()
	opts.Comment = "hello from the packer"
	if err := Pack(archivePath, "Correct_Horse1!", nil, opts, nil); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	comment, err := ViewComment(archivePath, "Correct_Horse1!")
	if err != nil {
		t.Fatalf("ViewComment failed: %v", err)
	}
	if comment != opts.Comment {
		t.Errorf("comment = %q; want %q", comment, opts.Comment)
	}
}
