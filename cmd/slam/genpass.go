package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slam/internal/util"
)

var genpassFlags struct {
	length  int
	noUpper bool
	noLower bool
	noNums  bool
	symbols bool
}

var genpassCmd = &cobra.Command{
	Use:   "genpass",
	Short: "Generate a cryptographically random password",
	RunE:  runGenpass,
}

func init() {
	genpassCmd.Flags().IntVarP(&genpassFlags.length, "length", "n", 24, "password length")
	genpassCmd.Flags().BoolVar(&genpassFlags.noUpper, "no-upper", false, "exclude uppercase letters")
	genpassCmd.Flags().BoolVar(&genpassFlags.noLower, "no-lower", false, "exclude lowercase letters")
	genpassCmd.Flags().BoolVar(&genpassFlags.noNums, "no-numbers", false, "exclude digits")
	genpassCmd.Flags().BoolVar(&genpassFlags.symbols, "symbols", true, "include symbols")

	rootCmd.AddCommand(genpassCmd)
}

func runGenpass(cmd *cobra.Command, args []string) error {
	pw, err := util.GenPassword(util.PassgenOptions{
		Length:  genpassFlags.length,
		Upper:   !genpassFlags.noUpper,
		Lower:   !genpassFlags.noLower,
		Numbers: !genpassFlags.noNums,
		Symbols: genpassFlags.symbols,
	})
	if err != nil {
		return err
	}
	if pw == "" {
		return fmt.Errorf("genpass: no character set enabled or length <= 0")
	}
	fmt.Println(pw)
	return nil
}
