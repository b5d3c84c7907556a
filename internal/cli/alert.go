package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/flashalerts/pkg/client"
)

func newAlertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Queue and inspect alerts on a running server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initClient()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return saveSession()
		},
	}

	cmd.AddCommand(newAlertsListCmd())
	cmd.AddCommand(newAlertsSendCmd())
	cmd.AddCommand(newAlertsQuickCmd())
	cmd.AddCommand(newAlertsAbandonCmd())

	return cmd
}

func newAlertsListCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the alerts of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _, err := apiClient.Alerts().List(context.Background(), tags...)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			out := cmd.OutOrStdout()
			if getOutputFormat() != "table" {
				return printOutput(out, list)
			}

			t := NewTable(out, "INDEX", "TYPES", "PERSIST KEY", "TAGS", "MESSAGE")
			for _, a := range list {
				t.AddRow(
					strconv.Itoa(a.Index),
					formatTypes(a.Types),
					a.PersistKey,
					strings.Join(a.Tags, ","),
					truncate(a.Message, 60),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "only alerts carrying any of these tags")

	return cmd
}

func newAlertsSendCmd() *cobra.Command {
	var req client.CreateAlertRequest

	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Queue an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Message = args[0]
			a, resp, err := apiClient.Alerts().Create(context.Background(), &req)
			if err != nil {
				return fmt.Errorf("failed to send alert: %w", err)
			}
			return printCreated(cmd.OutOrStdout(), a, resp)
		},
	}

	cmd.Flags().StringSliceVarP(&req.Types, "type", "t", nil, "alert types")
	cmd.Flags().StringSliceVar(&req.Tags, "tags", nil, "alert tags (default: server default tags)")
	cmd.Flags().BoolVarP(&req.Dismissible, "dismissible", "d", false, "allow the user to dismiss the alert")
	cmd.Flags().StringVarP(&req.PersistKey, "persist", "p", "", "keep the alert under this key until abandoned")
	cmd.Flags().BoolVar(&req.Raw, "raw", false, "send the message as HTML without escaping")

	return cmd
}

func newAlertsQuickCmd() *cobra.Command {
	var replace map[string]string
	var locale string

	cmd := &cobra.Command{
		Use:   "quick <type> [message-or-key]",
		Short: "Queue an alert using the shorthand form",
		Long: `Queue an alert whose type is derived from the name, e.g. "accountLocked"
becomes "account-locked". With --replace or --locale the second argument is a
translation key.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, resp, err := apiClient.Alerts().Quick(context.Background(), args[0], quickArgs(args[1:], replace, locale)...)
			if err != nil {
				return fmt.Errorf("failed to send alert: %w", err)
			}
			return printCreated(cmd.OutOrStdout(), a, resp)
		},
	}

	cmd.Flags().StringToStringVar(&replace, "replace", nil, "translation replacements, name=value")
	cmd.Flags().StringVar(&locale, "locale", "", "translation locale")

	return cmd
}

func quickArgs(rest []string, replace map[string]string, locale string) []interface{} {
	var args []interface{}
	for _, r := range rest {
		args = append(args, r)
	}
	if len(args) == 0 {
		return args
	}
	if replace != nil || locale != "" {
		if replace == nil {
			replace = map[string]string{}
		}
		args = append(args, replace)
	}
	if locale != "" {
		args = append(args, locale)
	}
	return args
}

func newAlertsAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <key>",
		Short: "Stop showing the persistent alert stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := apiClient.Alerts().Abandon(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to abandon alert: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Abandoned %s\n", args[0])
			return nil
		},
	}
}

func printCreated(w io.Writer, a *client.Alert, resp *client.Response) error {
	if getOutputFormat() != "table" {
		return printOutput(w, map[string]interface{}{"alert": a, "delivered": resp.Delivered})
	}

	fmt.Fprintf(w, "Index:       %d\n", a.Index)
	fmt.Fprintf(w, "Types:       %s\n", formatTypes(a.Types))
	fmt.Fprintf(w, "Message:     %s\n", a.Message)
	if a.PersistKey != "" {
		fmt.Fprintf(w, "Persist key: %s\n", a.PersistKey)
	}
	if len(resp.Delivered) > 0 {
		raw, _ := json.Marshal(resp.Delivered)
		fmt.Fprintf(w, "Delivered:   %s\n", raw)
	}
	return nil
}

