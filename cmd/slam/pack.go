package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"slam/internal/archive"
	"slam/internal/codec"
	"slam/internal/enumerate"
	"slam/internal/password"
	"slam/internal/slamlog"
	"slam/internal/util"
)

var packFlags struct {
	inputs        []string
	output        string
	passwordFlag  string
	passwordStdin bool
	comment       string
	algo          string
	level         int
	outdir        string
	dryRun        bool
	overwrite     bool
	exclude       []string
	quiet         bool
	allowWeak     bool
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack one or more files or directories into an .slm archive",
	RunE:  runPack,
}

func init() {
	packCmd.Flags().StringArrayVarP(&packFlags.inputs, "input", "i", nil, "file or directory to include (repeatable)")
	packCmd.Flags().StringVarP(&packFlags.output, "output", "o", "", "output archive path (required)")
	packCmd.Flags().StringVarP(&packFlags.passwordFlag, "password", "p", "", "password (insecure: visible in process list)")
	packCmd.Flags().BoolVarP(&packFlags.passwordStdin, "password-stdin", "P", false, "read password from stdin")
	packCmd.Flags().StringVarP(&packFlags.comment, "comment", "c", "", "plaintext comment to embed (encrypted at rest)")
	packCmd.Flags().StringVar(&packFlags.algo, "algo", "lzma", "compression algorithm: deflate or lzma")
	packCmd.Flags().IntVar(&packFlags.level, "level", 6, "compression level (0-9)")
	packCmd.Flags().StringVar(&packFlags.outdir, "outdir", "", "preferred extraction directory to embed (v6+)")
	packCmd.Flags().BoolVar(&packFlags.dryRun, "dry-run", false, "validate and report without writing an archive")
	packCmd.Flags().BoolVarP(&packFlags.overwrite, "yes", "y", false, "overwrite an existing output file")
	packCmd.Flags().StringArrayVarP(&packFlags.exclude, "exclude", "x", nil, "glob pattern to exclude (repeatable)")
	packCmd.Flags().BoolVarP(&packFlags.quiet, "quiet", "q", false, "suppress progress output")
	packCmd.Flags().BoolVar(&packFlags.allowWeak, "allow-weak-password", false, "bypass the password-strength policy")
	packCmd.MarkFlagRequired("input")
	packCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(packCmd)
}

func parseAlgorithm(s string) (codec.Algorithm, error) {
	switch s {
	case "deflate":
		return codec.AlgorithmDeflate, nil
	case "lzma":
		return codec.AlgorithmLZMA, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm %q (want deflate or lzma)", s)
	}
}

func runPack(cmd *cobra.Command, args []string) error {
	algo, err := parseAlgorithm(packFlags.algo)
	if err != nil {
		return err
	}

	results, err := enumerate.Enumerate(packFlags.inputs, enumerate.Exclusions(packFlags.exclude))
	if err != nil {
		return err
	}

	entries := make([]archive.Entry, len(results))
	for i, r := range results {
		entries[i] = archive.Entry{Name: r.Name, Mode: r.Mode, Bytes: r.Bytes}
	}

	pw, err := resolvePassword(packFlags.passwordFlag, packFlags.passwordStdin, !packFlags.passwordStdin)
	if err != nil {
		return err
	}

	reporter := NewReporter(packFlags.quiet)
	defer reporter.Done()

	opts := archive.PackOptions{
		CompressionAlgo:  uint8(algo),
		CompressionLevel: packFlags.level,
		Comment:          packFlags.comment,
		OutDir:           packFlags.outdir,
		DryRun:           packFlags.dryRun,
		Overwrite:        packFlags.overwrite,
		Reporter:         reporter,
	}

	var policy archive.PasswordPolicy
	if !packFlags.allowWeak {
		policy = password.NewPolicy()
	}

	var totalBytes int64
	for _, e := range entries {
		totalBytes += int64(len(e.Bytes))
	}
	start := time.Now()

	if err := archive.Pack(packFlags.output, pw, entries, opts, policy); err != nil {
		return err
	}

	if !packFlags.quiet {
		_, speed, _ := util.Statify(totalBytes, totalBytes, start)
		slamlog.Info("packed archive",
			slamlog.Int("entries", len(entries)),
			slamlog.String("size", util.Sizeify(totalBytes)),
			slamlog.String("speed", fmt.Sprintf("%.2f MiB/s", speed)),
			slamlog.String("path", packFlags.output))
	}
	return nil
}
