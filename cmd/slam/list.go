package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"slam/internal/archive"
	"slam/internal/slamerrors"
	"slam/internal/util"
)

var listFlags struct {
	passwordFlag  string
	passwordStdin bool
}

var listCmd = &cobra.Command{
	Use:   "list <archive.slm>",
	Short: "List the entries in an .slm archive without extracting them",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFlags.passwordFlag, "password", "p", "", "password (insecure: visible in process list)")
	listCmd.Flags().BoolVarP(&listFlags.passwordStdin, "password-stdin", "P", false, "read password from stdin")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	pw, err := resolvePassword(listFlags.passwordFlag, listFlags.passwordStdin, false)
	if err != nil {
		return err
	}

	entries, listErr := archive.List(args[0], pw)
	for _, e := range entries {
		fmt.Printf("%s %10s  %s\n", fs.FileMode(e.Mode).String(), util.Sizeify(int64(e.OriginalSize)), e.Name)
	}

	if listErr != nil {
		if slamerrors.IsCorrupt(listErr) {
			fmt.Fprintf(os.Stderr, "slam: listing stopped early, archive is corrupt: %v\n", listErr)
		} else {
			fmt.Fprintf(os.Stderr, "slam: listing stopped early: %v\n", listErr)
		}
		return listErr
	}
	return nil
}
