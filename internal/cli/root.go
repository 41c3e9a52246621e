// Package cli provides the Cobra command structure for blocklocate,
// grounded on yaklabco-gomdlint/internal/cli's root-command shape
// (PersistentPreRun toggling debug logging, a BuildInfo threaded into the
// version command).
package cli

import (
	"github.com/spf13/cobra"

	"github.com/jarredhawkins/blocklocate/internal/logging"
)

// BuildInfo holds build-time version information, set via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root blocklocate command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "blocklocate",
		Short: "Localize unclosed or mismatched block syntax errors",
		Long: `blocklocate finds the line ranges in a Ruby-family source file that,
once removed, let the rest of the file parse cleanly -- the same problem
dead_end/syntax_suggest solves, narrowing "syntax error somewhere in this
300-line file" down to the handful of lines actually responsible.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to .blocklocate.yaml (skips upward discovery)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newLocateCommand(&color, &configPath))
	rootCmd.AddCommand(newWatchCommand(&configPath))
	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
