package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/metricsvc/internal/infrastructure/monitoring"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(Observability(provider.Tracer("test"), metrics))
	router.GET("/index", func(c *gin.Context) { c.String(http.StatusOK, "hello") })

	assert.Equal(t, http.StatusOK, serve(router, "/index").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, "/nope").Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/index", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "not_found", "404")))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET /index", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status_code", http.StatusOK))
}

func TestObservability_NilMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider := sdktrace.NewTracerProvider()

	router := gin.New()
	router.Use(Observability(provider.Tracer("test"), nil))
	router.GET("/index", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, "/index").Code)
}
