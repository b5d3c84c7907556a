package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the server is up and its session store reachable",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initClient()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			health, err := apiClient.Health(ctx)
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}
			ready, readyErr := apiClient.Ready(ctx)

			if getOutputFormat() != "table" {
				summary := map[string]interface{}{"status": health.Status}
				if readyErr != nil {
					summary["ready"] = readyErr.Error()
				} else {
					summary["ready"] = ready.Status
					summary["sessions"] = ready.Sessions
				}
				return printOutput(out, summary)
			}

			fmt.Fprintf(out, "  Server:   [+] %s\n", health.Status)
			if readyErr != nil {
				fmt.Fprintf(out, "  Sessions: [-] %v\n", readyErr)
				return nil
			}
			fmt.Fprintf(out, "  Sessions: [+] %s (%s)\n", ready.Status, ready.Sessions)
			return nil
		},
	}
}
