package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/errors"
)

func snapshotOf(t *testing.T, router http.Handler) models.Snapshot {
	t.Helper()
	w := get(router, constants.PathMetrics)
	require.Equal(t, http.StatusOK, w.Code)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func TestCounterHandler_Index(t *testing.T) {
	router := setupRouter(newMemoryService())

	w := get(router, constants.PathIndex)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())

	assert.Equal(t, models.Snapshot{}, snapshotOf(t, router))
}

func TestCounterHandler_MetricsInitialState(t *testing.T) {
	router := setupRouter(newMemoryService())

	w := get(router, constants.PathMetrics)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"400_count":0,"500_count":0,"request_count":0}`, w.Body.String())
}

func TestCounterHandler_MetricsIsReadOnly(t *testing.T) {
	router := setupRouter(newMemoryService())

	first := get(router, constants.PathMetrics).Body.String()
	second := get(router, constants.PathMetrics).Body.String()
	assert.Equal(t, first, second)
}

func TestCounterHandler_Action(t *testing.T) {
	router := setupRouter(newMemoryService())

	for i := 0; i < 5; i++ {
		w := get(router, constants.PathAction)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "act!", w.Body.String())
	}

	assert.Equal(t, models.Snapshot{RequestCount: 5}, snapshotOf(t, router))
}

func TestCounterHandler_ActionConcurrent(t *testing.T) {
	router := setupRouter(newMemoryService())

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			get(router, constants.PathAction)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), snapshotOf(t, router).RequestCount)
}

func TestCounterHandler_ErrorEndpoint(t *testing.T) {
	router := setupRouter(newMemoryService())

	w := get(router, constants.PathErrorEndpoint)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", w.Body.String())

	assert.Equal(t, models.Snapshot{ServerErrorCount: 1}, snapshotOf(t, router))
}

func TestCounterHandler_ClientErrorEndpoint(t *testing.T) {
	router := setupRouter(newMemoryService())

	w := get(router, constants.PathClientErrorEndpoint)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "client_and_server_is_not_degreed", w.Body.String())

	assert.Equal(t, models.Snapshot{ClientErrorCount: 1}, snapshotOf(t, router))
}

func TestCounterHandler_StoreFailures(t *testing.T) {
	storeErr := errors.ErrStoreUnavailable.WithMessage("connection refused")

	t.Run("action failure resolves to 500", func(t *testing.T) {
		counters := new(MockCounterAppService)
		counters.On("RecordAction", mock.Anything).Return(storeErr).Once()
		counters.On("RecordServerError", mock.Anything).Return(nil).Once()

		w := get(setupRouter(counters), constants.PathAction)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "error", w.Body.String())
		counters.AssertExpectations(t)
	})

	t.Run("snapshot failure resolves to 500", func(t *testing.T) {
		counters := new(MockCounterAppService)
		counters.On("Snapshot", mock.Anything).Return(models.Snapshot{}, storeErr).Once()
		counters.On("RecordServerError", mock.Anything).Return(nil).Once()

		w := get(setupRouter(counters), constants.PathMetrics)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "error", w.Body.String())
		assert.NotContains(t, w.Body.String(), "connection refused")
		counters.AssertExpectations(t)
	})
}

