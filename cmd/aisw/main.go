// Package main is the entry point for the aisw CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/aisw/cmd/aisw/commands"
	"github.com/thoreinstein/aisw/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	// Commands that already reported their outcome return a bare exit code.
	var exitErr *errors.ExitError
	silent := errors.Is(err, errors.ErrAborted) || (errors.As(err, &exitErr) && exitErr.Err == nil)
	if !silent {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.SuggestionFor(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
	}
	os.Exit(errors.ExitCode(err))
}
