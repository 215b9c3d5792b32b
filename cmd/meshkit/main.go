// Package main is the entry point for the meshkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/meshkit/cmd/meshkit/commands"
	"github.com/thoreinstein/meshkit/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr)
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(errors.ExitCode(err))
	}
}
