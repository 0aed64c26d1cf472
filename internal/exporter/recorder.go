package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/turtacn/metricsvc/internal/domain/models"
)

// Recorder holds the republished gauges.
type Recorder struct {
	RequestCount     prometheus.Gauge
	ClientErrorCount prometheus.Gauge
	ServerErrorCount prometheus.Gauge
	ScrapeFailures   prometheus.Counter
}

// NewRecorder creates the gauges and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		RequestCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_total",
			Help: "The total number of http requests",
		}),
		ClientErrorCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_400_response_total",
			Help: "The total number of http response code 400",
		}),
		ServerErrorCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_500_response_total",
			Help: "The total number of http response code 500",
		}),
		ScrapeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "metricsvc_exporter_scrape_failures_total",
			Help: "Number of failed polls of the counter service.",
		}),
	}
}

// Observe sets every gauge from snap.
func (r *Recorder) Observe(snap models.Snapshot) {
	r.RequestCount.Set(float64(snap.RequestCount))
	r.ClientErrorCount.Set(float64(snap.ClientErrorCount))
	r.ServerErrorCount.Set(float64(snap.ServerErrorCount))
}

// ObserveFailure counts a failed poll. Gauges keep their last values.
func (r *Recorder) ObserveFailure() {
	r.ScrapeFailures.Inc()
}
