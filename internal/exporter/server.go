package exporter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/pkg/constants"
)

// NewHandler exposes gatherer in the Prometheus text format on /metrics.
func NewHandler(gatherer prometheus.Gatherer) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET(constants.PathMetrics, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return engine
}

// NewServer creates the exporter's HTTP server.
func NewServer(cfg *config.ExporterConfig, gatherer prometheus.Gatherer) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(gatherer),
		ReadHeaderTimeout: cfg.Timeout,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
}
