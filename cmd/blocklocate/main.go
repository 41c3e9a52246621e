// Package main is the entry point for the blocklocate CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jarredhawkins/blocklocate/internal/cli"
	"github.com/jarredhawkins/blocklocate/internal/logging"
)

// Build-time variables set by the release tooling via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	rootCmd := cli.NewRootCommand(info)
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	if err != nil {
		if code := cli.ExitCode(err); code != cli.ExitSuspectFound {
			logging.Default().Error("command failed", "err", err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
