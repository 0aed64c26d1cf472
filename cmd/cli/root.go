// Package cli implements the metricsvc command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/internal/infrastructure/monitoring"
)

// NewRootCommand builds the `metricsvc` command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "metricsvc",
		Short: "Outcome counter service and its Prometheus exporter.",
		Long: `metricsvc serves five fixed HTTP routes that count actions, client errors
and server errors, and can republish those counters as Prometheus gauges.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default searches ./config.yaml and /etc/metricsvc/config.yaml)")

	rootCmd.AddCommand(
		newServeCommand(&configFile),
		newExporterCommand(&configFile),
		newSnapshotCommand(&configFile),
	)
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap(configFile string) (*config.Loader, *config.Config, *monitoring.ZapLogger, error) {
	loader := config.NewLoader(configFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return loader, cfg, appLogger, nil
}

// watchLogLevel applies log.level changes from the config file at runtime.
func watchLogLevel(loader *config.Loader, appLogger *monitoring.ZapLogger) {
	loader.Watch(appLogger, func(next *config.Config) {
		if next.Log.Level != appLogger.Level() {
			appLogger.SetLevel(next.Log.Level)
		}
	})
}
