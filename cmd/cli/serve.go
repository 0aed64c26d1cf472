package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/metricsvc/internal/application/service"
	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/internal/domain/repository"
	"github.com/turtacn/metricsvc/internal/infrastructure/monitoring"
	"github.com/turtacn/metricsvc/internal/infrastructure/persistence/memory"
	redisstore "github.com/turtacn/metricsvc/internal/infrastructure/persistence/redis"
	httpiface "github.com/turtacn/metricsvc/internal/interfaces/http"
	"github.com/turtacn/metricsvc/internal/interfaces/http/handlers"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/logger"
)

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the counter HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configFile)
		},
	}
}

func runServe(ctx context.Context, configFile string) error {
	loader, cfg, appLogger, err := bootstrap(configFile)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()
	watchLogLevel(loader, appLogger)

	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, cfg.Server.Environment, appLogger)
	if err != nil {
		appLogger.Error(ctx, "Failed to initialize tracing", err)
		return err
	}
	defer func() { _ = tracing.Shutdown(context.Background()) }()

	store, deps, closeStore, err := newCounterStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error(ctx, "Failed to initialize counter store", err, logger.Fields{"backend": cfg.Store.Backend})
		return err
	}
	defer closeStore()

	registry := monitoring.NewRegistry()
	metrics := monitoring.NewMetrics(registry)

	counters := service.NewCounterAppService(store, metrics, appLogger)
	router := httpiface.NewRouter(httpiface.RouterDependencies{
		Config:         cfg,
		Logger:         appLogger,
		CounterHandler: handlers.NewCounterHandler(counters),
		OutcomeHandler: handlers.NewOutcomeHandler(counters, appLogger),
		HealthHandler:  handlers.NewHealthHandler(deps, appLogger),
		Tracer:         tracing.Tracer(),
		Metrics:        metrics,
		Gatherer:       registry,
	})

	appLogger.Info(ctx, "Counter service configured", logger.Fields{
		"backend":     cfg.Store.Backend,
		"address":     cfg.Server.Addr(),
		"config_file": loader.ConfigFileUsed(),
	})
	return router.Run(ctx)
}

// newCounterStore selects the configured backend. Counters start at zero
// for every process start regardless of backend.
func newCounterStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.CounterStore, map[string]handlers.Pinger, func(), error) {
	if cfg.Store.Backend != constants.StoreBackendRedis {
		return memory.NewCounterStore(), nil, func() {}, nil
	}

	conn := redisstore.NewRedisConnection(&cfg.Store.Redis, log)
	if err := conn.Connect(ctx); err != nil {
		return nil, nil, nil, err
	}
	closeConn := func() { _ = conn.Close() }

	store := redisstore.NewCounterStore(conn, cfg.Store.Redis.Key, log)
	if err := store.Reset(ctx); err != nil {
		closeConn()
		return nil, nil, nil, err
	}
	return store, map[string]handlers.Pinger{"redis": conn}, closeConn, nil
}
