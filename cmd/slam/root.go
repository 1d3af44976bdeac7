// Command slam packages files into and restores them from an authenticated,
// encrypted, compressed .slm archive.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"slam/internal/slamerrors"
	"slam/internal/slamlog"
)

// Version is set by main.go.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "slam",
	Short: "Pack and unpack authenticated, encrypted .slm archives",
	Long: `slam packages one or more files into a single authenticated, encrypted,
compressed container (.slm) and later reverses the process to restore the
originals. Confidentiality and integrity are derived from a password; every
byte of the container — header and payload alike — is tamper-evident.`,
	Version: Version,
}

var globalReporter *Reporter

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the CLI, returning the process exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version
	slamlog.SetLogger(slamlog.NewSimpleLogger(os.Stderr, slamlog.LevelInfo))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slamlog.Warn("interrupted, aborting")
		os.Exit(1)
	}()

	if err := rootCmd.Execute(); err != nil {
		switch {
		case slamerrors.IsAuthFailed(err):
			// Wrong password or tampered archive: distinguish this from a
			// generic failure so scripts can react to it specifically.
			return 2
		case !slamerrors.IsAbort(err):
			// Non-fatal by the archive codec's own classification (e.g. a
			// permission-restore warning); still report it but don't treat
			// it as a hard failure.
			slamlog.Warn("completed with a non-fatal error", slamlog.Err(err))
			return 0
		default:
			return 1
		}
	}
	return 0
}
