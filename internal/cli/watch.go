package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jarredhawkins/blocklocate"
	"github.com/jarredhawkins/blocklocate/internal/diagnostics"
	"github.com/jarredhawkins/blocklocate/internal/logging"
	"github.com/jarredhawkins/blocklocate/internal/watch"
)

func newWatchCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-locate suspect ranges whenever a file under dir changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runWatch(cmd, dir, *configPath)
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command, dir, configPath string) error {
	logger := logging.Default()
	out := cmd.OutOrStdout()
	styles := diagnostics.NewStyles(diagnostics.IsColorEnabled("auto", out))

	opts, err := resolveOptions(configPath)
	if err != nil {
		return exitError{code: ExitConfigError, err: err}
	}

	w, err := watch.New(dir, opts, func(r watch.Result) {
		if r.Removed {
			logger.Info("file removed", "path", r.Path)
			return
		}
		var locateErr *blocklocate.LocateError
		if r.Err != nil && !asLocateError(r.Err, &locateErr) {
			fmt.Fprintf(out, "%s: error: %v\n", r.Path, r.Err)
			return
		}
		if locateErr != nil {
			r.Ranges = locateErr.Ranges
		}
		source, err := os.ReadFile(r.Path)
		if err != nil {
			fmt.Fprintf(out, "%s: error: %v\n", r.Path, err)
			return
		}
		fmt.Fprint(out, styles.FormatRanges(r.Path, r.Ranges, string(source)))
	})
	if err != nil {
		return exitError{code: ExitInternalError, err: err}
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		return exitError{code: ExitInternalError, err: err}
	}

	<-cmd.Context().Done()
	return nil
}
