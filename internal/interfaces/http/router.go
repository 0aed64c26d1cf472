package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/internal/infrastructure/monitoring"
	"github.com/turtacn/metricsvc/internal/interfaces/http/handlers"
	"github.com/turtacn/metricsvc/internal/interfaces/http/middleware"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/logger"
)

// RouterDependencies bundles everything the router wires together.
type RouterDependencies struct {
	Config         *config.Config
	Logger         logger.Logger
	CounterHandler *handlers.CounterHandler
	OutcomeHandler *handlers.OutcomeHandler
	HealthHandler  *handlers.HealthHandler

	// Optional instrumentation; nil disables it.
	Tracer   trace.Tracer
	Metrics  *monitoring.Metrics
	Gatherer prometheus.Gatherer
}

// Router owns the gin engine and its HTTP server.
type Router struct {
	engine *gin.Engine
	config *config.Config
	logger logger.Logger
	server *http.Server
}

// NewRouter creates the engine and registers every route.
func NewRouter(deps RouterDependencies) *Router {
	if deps.Config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	// Slash and case variants of a route are unregistered paths, not redirects.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	r := &Router{
		engine: engine,
		config: deps.Config,
		logger: deps.Logger,
	}
	r.setupRoutes(deps)
	return r
}

func (r *Router) setupRoutes(deps RouterDependencies) {
	statusHandlers := middleware.NewStatusHandlers().WithLogger(r.logger)
	deps.OutcomeHandler.Register(statusHandlers)

	// Order matters: the outer middleware observe the status after the
	// status handlers ran; Recovery sits inside so a panic resolves to 500.
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logging(r.logger))
	if deps.Tracer != nil {
		r.engine.Use(middleware.Observability(deps.Tracer, deps.Metrics))
	}
	r.engine.Use(statusHandlers.Middleware())
	r.engine.Use(middleware.Recovery(r.logger))

	if origins := r.config.Server.AllowedOrigins; len(origins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", constants.HeaderRequestID},
			ExposeHeaders: []string{constants.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	routes := map[string]gin.HandlerFunc{
		constants.PathIndex:               deps.CounterHandler.Index,
		constants.PathMetrics:             deps.CounterHandler.Metrics,
		constants.PathAction:              deps.CounterHandler.Action,
		constants.PathErrorEndpoint:       deps.CounterHandler.ErrorEndpoint,
		constants.PathClientErrorEndpoint: deps.CounterHandler.ClientErrorEndpoint,
	}
	for path, h := range routes {
		// HEAD runs the same handler, side effects included.
		r.engine.Match([]string{http.MethodGet, http.MethodHead}, path, h)
	}

	monitoringCfg := r.config.Monitoring
	if monitoringCfg.PprofEnabled {
		pprof.Register(r.engine)
	}
	if monitoringCfg.PrometheusEnabled && deps.Gatherer != nil {
		r.engine.GET(monitoringCfg.PrometheusPath, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if monitoringCfg.HealthEnabled && deps.HealthHandler != nil {
		r.engine.GET("/debug/health/live", deps.HealthHandler.LivenessCheck)
		r.engine.GET("/debug/health/ready", deps.HealthHandler.ReadinessCheck)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "The requested resource was not found",
		})
	})
}

// Engine exposes the handler for tests and embedding.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (r *Router) Run(ctx context.Context) error {
	r.server = &http.Server{
		Addr:           r.config.Server.Addr(),
		Handler:        r.engine,
		ReadTimeout:    r.config.Server.ReadTimeout,
		WriteTimeout:   r.config.Server.WriteTimeout,
		IdleTimeout:    r.config.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
	return Serve(ctx, r.server, r.config.Server.ShutdownTimeout, r.logger)
}

// Serve runs srv until ctx is cancelled and then drains it within timeout.
func Serve(ctx context.Context, srv *http.Server, timeout time.Duration, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "Starting HTTP server", logger.Fields{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "Shutting down HTTP server...", logger.Fields{"address": srv.Addr})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Server forced to shutdown", err)
		return err
	}

	log.Info(shutdownCtx, "HTTP server stopped", logger.Fields{"address": srv.Addr})
	return nil
}
