package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts/render"
)

func newRenderCmd() *cobra.Command {
	var driver string
	var tags []string

	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render a JSON list of alerts to HTML",
		Long: `Render a JSON array of alerts, as stored in the session, to the HTML a
page would show. Alerts without tags receive the default tags.

  [{"message": "Saved {here}", "types": ["success"], "dismissible": true,
    "links": [{"replace": "here", "url": "/drafts/1", "blank": false}]}]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var records []alerts.Record
			if err := json.Unmarshal(raw, &records); err != nil {
				return fmt.Errorf("invalid alerts file: %w", err)
			}

			defaults := viper.GetStringSlice("tags")
			if len(defaults) == 0 {
				defaults = []string{"default"}
			}
			bag := alerts.NewBag(defaults)
			for _, r := range records {
				if len(r.Tags) == 0 {
					r.Tags = defaults
				}
				bag.AddRecords(r)
			}

			if driver == "" {
				driver = viper.GetString("renderer")
			}
			renderer, err := render.NewManager(driver).Default()
			if err != nil {
				return err
			}

			html, err := render.Container{Renderer: renderer, Tags: tags}.Render(bag)
			if err != nil {
				return fmt.Errorf("failed to render alerts: %w", err)
			}
			if html != "" {
				fmt.Fprintln(cmd.OutOrStdout(), html)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "renderer: bootstrap or tailwind (default from config)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "only alerts carrying any of these tags")

	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return raw, nil
}
