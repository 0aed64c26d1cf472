package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/metricsvc/internal/application/service"
	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/internal/infrastructure/persistence/memory"
	"github.com/turtacn/metricsvc/internal/interfaces/http/middleware"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/logger"
)

// MockCounterAppService is a mock for service.CounterAppService
type MockCounterAppService struct {
	mock.Mock
}

func (m *MockCounterAppService) RecordAction(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCounterAppService) RecordServerError(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCounterAppService) RecordClientError(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCounterAppService) Snapshot(ctx context.Context) (models.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Snapshot), args.Error(1)
}

func setupRouter(counters service.CounterAppService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNoopLogger()

	reg := middleware.NewStatusHandlers()
	NewOutcomeHandler(counters, log).Register(reg)
	h := NewCounterHandler(counters)

	router := gin.New()
	router.Use(reg.Middleware())
	router.GET(constants.PathIndex, h.Index)
	router.GET(constants.PathMetrics, h.Metrics)
	router.GET(constants.PathAction, h.Action)
	router.GET(constants.PathErrorEndpoint, h.ErrorEndpoint)
	router.GET(constants.PathClientErrorEndpoint, h.ClientErrorEndpoint)
	return router
}

func newMemoryService() service.CounterAppService {
	return service.NewCounterAppService(memory.NewCounterStore(), nil, logger.NewNoopLogger())
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}
