// Package main is the entry point for the gogo CLI.
package main

import (
	"os"

	"github.com/opencode-ai/gogo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
