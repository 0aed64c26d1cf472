package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/metricsvc/internal/exporter"
	"github.com/turtacn/metricsvc/internal/infrastructure/monitoring"
	httpiface "github.com/turtacn/metricsvc/internal/interfaces/http"
	"github.com/turtacn/metricsvc/pkg/logger"
)

func newExporterCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "exporter",
		Short: "Poll a running service and republish its counters for Prometheus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runExporter(ctx, *configFile)
		},
	}
}

func runExporter(ctx context.Context, configFile string) error {
	loader, cfg, appLogger, err := bootstrap(configFile)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()
	watchLogLevel(loader, appLogger)

	registry := monitoring.NewRegistry()
	client := exporter.NewClient(cfg.Exporter.TargetURL, cfg.Exporter.Timeout)
	scraper := exporter.NewScraper(client, exporter.NewRecorder(registry), cfg.Exporter.ScrapeInterval, appLogger)
	srv := exporter.NewServer(&cfg.Exporter, registry)

	appLogger.Info(ctx, "Exporter configured", logger.Fields{
		"target":  client.URL(),
		"address": srv.Addr,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scraper.Run(gctx)
	})
	g.Go(func() error {
		return httpiface.Serve(gctx, srv, cfg.Server.ShutdownTimeout, appLogger)
	})
	return g.Wait()
}
