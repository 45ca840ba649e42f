// Package main is the entry point for the streambar CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tOgg1/streambar/internal/cli"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var _ = []string{commit, date}

func main() {
	// Default entrypoint: launch the sidebar when invoked with no args.
	run := cli.Execute
	if len(os.Args) == 1 {
		run = cli.ExecuteUI
	}

	if err := run(version); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if !exitErr.Printed {
				fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
