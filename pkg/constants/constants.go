// Package constants defines system-wide constants for the metricsvc service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ================================================================================
// Service Identity
// ================================================================================

const (
	// ServiceName is reported in logs and trace resources
	ServiceName = "metricsvc"

	// ExporterServiceName is reported by the exporter process
	ExporterServiceName = "metricsvc-exporter"
)

// ================================================================================
// Route Constants
// ================================================================================

const (
	// PathIndex is the greeting endpoint
	PathIndex = "/index"

	// PathMetrics renders the counter snapshot as JSON
	PathMetrics = "/metrics"

	// PathAction increments request_count
	PathAction = "/action"

	// PathErrorEndpoint resolves every request to a server error
	PathErrorEndpoint = "/error_endpoint"

	// PathClientErrorEndpoint resolves every request to a client error
	PathClientErrorEndpoint = "/client_error_endpoint"
)

// ================================================================================
// Response Bodies
// ================================================================================

const (
	BodyIndex       = "hello"
	BodyAction      = "act!"
	BodyServerError = "error"
	BodyClientError = "client_and_server_is_not_degreed"
)

// ================================================================================
// Server Defaults
// ================================================================================

const (
	// DefaultHTTPHost binds on all interfaces
	DefaultHTTPHost = "0.0.0.0"

	// DefaultHTTPPort is the service port
	DefaultHTTPPort = 8080

	// DefaultReadTimeout is the HTTP read timeout
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the HTTP write timeout
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the HTTP keep-alive idle timeout
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the graceful shutdown timeout (30 seconds)
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultPrometheusPath serves the process registry when enabled
	DefaultPrometheusPath = "/debug/prometheus"
)

// ================================================================================
// Exporter Defaults
// ================================================================================

const (
	// DefaultExporterTargetURL is the base URL of the counter service
	DefaultExporterTargetURL = "http://localhost:8080"

	// DefaultExporterPort serves the Prometheus gauges
	DefaultExporterPort = 2112

	// DefaultScrapeInterval is the pause between two polls of /metrics
	DefaultScrapeInterval = 2 * time.Second

	// DefaultScrapeTimeout bounds a single poll
	DefaultScrapeTimeout = 5 * time.Second
)

// ================================================================================
// Store Constants
// ================================================================================

// StoreBackend selects the CounterStore implementation
type StoreBackend string

const (
	// StoreBackendMemory keeps counters in process memory
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendRedis keeps counters in a Redis hash
	StoreBackendRedis StoreBackend = "redis"
)

// DefaultRedisCounterKey is the hash holding the counters
const DefaultRedisCounterKey = "metricsvc:counters"

// ================================================================================
// Logging Constants
// ================================================================================

// LogLevel represents the severity level of log messages
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey represents keys used in context.Context
type ContextKey string

const (
	// ContextKeyRequestID is the key for request ID in context
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID is the key for distributed trace ID in context
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyLogger carries a request-scoped logger
	ContextKeyLogger ContextKey = "logger"
)

// HeaderRequestID is echoed back on every response
const HeaderRequestID = "X-Request-ID"
