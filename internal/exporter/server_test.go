package exporter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/internal/infrastructure/monitoring"
)

func TestHandler_ServesGauges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := monitoring.NewRegistry()
	recorder := NewRecorder(reg)
	recorder.Observe(models.Snapshot{ClientErrorCount: 10, ServerErrorCount: 5, RequestCount: 100})

	w := httptest.NewRecorder()
	NewHandler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "http_requests_total 100")
	assert.Contains(t, body, "http_400_response_total 10")
	assert.Contains(t, body, "http_500_response_total 5")
	assert.Contains(t, body, "go_goroutines")
}

func TestNewServer_Addr(t *testing.T) {
	srv := NewServer(&config.ExporterConfig{Host: "0.0.0.0", Port: 2112}, monitoring.NewRegistry())
	assert.Equal(t, "0.0.0.0:2112", srv.Addr)
}
