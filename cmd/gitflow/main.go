// Package main provides the entry point for the gitflow CLI.
package main

import (
	"context"
	"os"

	"github.com/gitflow-tools/gitflow/internal/cli"
	"github.com/gitflow-tools/gitflow/internal/signal"
)

// Set by the release build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	h := signal.NewHandler(context.Background())
	defer h.Stop()
	defer cli.CloseLogFile()

	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err == nil {
		return cli.ExitSuccess
	}
	if h.WasInterrupted() {
		return cli.ExitInterrupted
	}
	cli.ReportError(os.Stderr, err)
	return cli.ExitCode(err)
}
