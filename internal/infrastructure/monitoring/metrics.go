package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the service's own Prometheus instrumentation. It is
// distinct from the counter snapshot served on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CounterIncrements   *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metricsvc_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "metricsvc_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		CounterIncrements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metricsvc_counter_increments_total",
				Help: "Outcome counter increments by counter name and result.",
			},
			[]string{"counter", "result"},
		),
	}
}

// RecordRequest records one handled HTTP request.
func (m *Metrics) RecordRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordIncrement records an attempted counter increment.
func (m *Metrics) RecordIncrement(counter string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.CounterIncrements.WithLabelValues(counter, result).Inc()
}

// NewRegistry returns a registry carrying the Go runtime and process
// collectors, like the default Prometheus registry.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
