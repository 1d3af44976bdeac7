package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordEmpty    = errors.New("password cannot be empty")
)

func isTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// readPasswordSecure reads a password from stdin without echo, falling
// back to a buffered line read when stdin isn't a terminal.
func readPasswordSecure(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if !isTerminal() {
		reader := bufio.NewReader(os.Stdin)
		pw, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimSuffix(strings.TrimSuffix(pw, "\n"), "\r"), nil
	}

	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// readPasswordInteractive prompts for a password, optionally with
// confirmation (used when packing, to catch typos before encryption).
func readPasswordInteractive(confirm bool) (string, error) {
	password, err := readPasswordSecure("Password: ")
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", errPasswordEmpty
	}

	if confirm {
		again, err := readPasswordSecure("Confirm password: ")
		if err != nil {
			return "", err
		}
		if password != again {
			return "", errPasswordMismatch
		}
	}

	return password, nil
}

// readPasswordFromStdin reads a single line from stdin (for -P/--password-stdin).
func readPasswordFromStdin() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	pw, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(pw, "\n"), "\r"), nil
}

// resolvePassword picks the password from (in priority order) an explicit
// flag value, stdin, or an interactive prompt.
func resolvePassword(explicit string, fromStdin, confirm bool) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if fromStdin {
		return readPasswordFromStdin()
	}
	return readPasswordInteractive(confirm)
}
