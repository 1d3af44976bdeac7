package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slam/internal/archive"
)

var commentFlags struct {
	passwordFlag  string
	passwordStdin bool
}

var commentCmd = &cobra.Command{
	Use:   "comment <archive.slm>",
	Short: "Print an .slm archive's embedded comment, if any",
	Args:  cobra.ExactArgs(1),
	RunE:  runComment,
}

func init() {
	commentCmd.Flags().StringVarP(&commentFlags.passwordFlag, "password", "p", "", "password (insecure: visible in process list)")
	commentCmd.Flags().BoolVarP(&commentFlags.passwordStdin, "password-stdin", "P", false, "read password from stdin")

	rootCmd.AddCommand(commentCmd)
}

func runComment(cmd *cobra.Command, args []string) error {
	pw, err := resolvePassword(commentFlags.passwordFlag, commentFlags.passwordStdin, false)
	if err != nil {
		return err
	}

	comment, err := archive.ViewComment(args[0], pw)
	if err != nil {
		return err
	}
	if comment == "" {
		fmt.Println("(no comment)")
		return nil
	}
	fmt.Println(comment)
	return nil
}
