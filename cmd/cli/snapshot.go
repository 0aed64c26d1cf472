package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/internal/exporter"
)

func newSnapshotCommand(configFile *string) *cobra.Command {
	var (
		targetURL string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current counters of a running service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(*configFile)
			if err != nil {
				return err
			}
			if targetURL == "" {
				targetURL = cfg.Exporter.TargetURL
			}
			if timeout <= 0 {
				timeout = cfg.Exporter.Timeout
			}

			snap, err := exporter.NewClient(targetURL, timeout).Fetch(cmd.Context())
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&targetURL, "url", "", "base URL of the service (defaults to exporter.target_url)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (defaults to exporter.timeout)")
	return cmd
}
