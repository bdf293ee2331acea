// Package main provides the entry point for the teamcal CLI.
package main

import (
	"context"
	"os"

	"github.com/teamcal/teamcal/internal/cli"
	"github.com/teamcal/teamcal/internal/signal"
)

// Set via -ldflags at release time.
//
//nolint:gochecknoglobals // Build-time variables
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	handler := signal.NewHandler(context.Background())

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	handler.Stop()

	if handler.WasInterrupted() {
		os.Exit(cli.ExitInterrupted)
	}
	os.Exit(cli.ExitCodeForError(err))
}
