package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turtacn/metricsvc/internal/application/service"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/errors"
)

// CounterHandler serves the five fixed routes.
type CounterHandler struct {
	counters service.CounterAppService
}

// NewCounterHandler creates a new CounterHandler.
func NewCounterHandler(counters service.CounterAppService) *CounterHandler {
	return &CounterHandler{counters: counters}
}

// Index greets without side effects.
func (h *CounterHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, constants.BodyIndex)
}

// Metrics renders the live counter snapshot.
func (h *CounterHandler) Metrics(c *gin.Context) {
	snap, err := h.counters.Snapshot(c.Request.Context())
	if err != nil {
		c.Status(errors.HTTPStatus(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Action increments request_count.
func (h *CounterHandler) Action(c *gin.Context) {
	if err := h.counters.RecordAction(c.Request.Context()); err != nil {
		c.Status(errors.HTTPStatus(err))
		return
	}
	c.String(http.StatusOK, constants.BodyAction)
}

// ErrorEndpoint resolves to 500; the body comes from the 500 status handler.
func (h *CounterHandler) ErrorEndpoint(c *gin.Context) {
	c.Status(http.StatusInternalServerError)
}

// ClientErrorEndpoint resolves to 400; the body comes from the 400 status handler.
func (h *CounterHandler) ClientErrorEndpoint(c *gin.Context) {
	c.Status(http.StatusBadRequest)
}
