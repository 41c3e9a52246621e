package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jarredhawkins/blocklocate/internal/rpcserver"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Speak the blocklocate/diagnose JSON-RPC protocol over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := resolveOptions(*configPath)
			if err != nil {
				return exitError{code: ExitConfigError, err: err}
			}

			server := rpcserver.NewServer(opts)
			if err := server.Serve(cmd.Context(), os.Stdin, os.Stdout); err != nil {
				return exitError{code: ExitInternalError, err: err}
			}
			return nil
		},
	}
}
