package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/server"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Maintain the session store",
	}

	cmd.AddCommand(newSessionsGCCmd())

	return cmd
}

func newSessionsGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Delete expired sessions",
		Long:  "Delete expired sessions from the store named by SESSION_DRIVER. Redis expires sessions on its own.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, closeStore, err := server.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := store.GC(context.Background())
			if err != nil {
				return fmt.Errorf("failed to collect sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired sessions (%s)\n", n, cfg.Session.Driver)
			return nil
		},
	}
}
