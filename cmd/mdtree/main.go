// Package main is the entry point for the mdtree CLI.
package main

import (
	"os"

	"github.com/yaklabco/mdtree/internal/cli"
	"github.com/yaklabco/mdtree/internal/logging"
)

// Build-time variables set via ldflags by the stavefile's build targets.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return 1
	}

	return 0
}
