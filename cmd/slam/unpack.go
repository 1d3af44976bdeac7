package main

import (
	"github.com/spf13/cobra"

	"slam/internal/archive"
	"slam/internal/slamlog"
)

var unpackFlags struct {
	output        string
	passwordFlag  string
	passwordStdin bool
	overwrite     bool
	quiet         bool
}

var unpackCmd = &cobra.Command{
	Use:   "unpack <archive.slm>",
	Short: "Unpack an .slm archive, restoring its original files",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpack,
}

func init() {
	unpackCmd.Flags().StringVarP(&unpackFlags.output, "output", "o", "", "extraction directory (defaults to the archive's stored outdir, then the current directory)")
	unpackCmd.Flags().StringVarP(&unpackFlags.passwordFlag, "password", "p", "", "password (insecure: visible in process list)")
	unpackCmd.Flags().BoolVarP(&unpackFlags.passwordStdin, "password-stdin", "P", false, "read password from stdin")
	unpackCmd.Flags().BoolVarP(&unpackFlags.overwrite, "yes", "y", false, "overwrite existing files at the destination")
	unpackCmd.Flags().BoolVarP(&unpackFlags.quiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(unpackCmd)
}

func runUnpack(cmd *cobra.Command, args []string) error {
	pw, err := resolvePassword(unpackFlags.passwordFlag, unpackFlags.passwordStdin, false)
	if err != nil {
		return err
	}

	reporter := NewReporter(unpackFlags.quiet)
	defer reporter.Done()

	opts := archive.UnpackOptions{
		TargetDir: unpackFlags.output,
		Overwrite: unpackFlags.overwrite,
		Reporter:  reporter,
	}

	if err := archive.Unpack(args[0], pw, opts); err != nil {
		return err
	}

	if !unpackFlags.quiet {
		slamlog.Info("unpacked archive", slamlog.String("path", args[0]))
	}
	return nil
}
