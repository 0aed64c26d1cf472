package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turtacn/metricsvc/internal/application/service"
	"github.com/turtacn/metricsvc/internal/interfaces/http/middleware"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/logger"
)

// OutcomeHandler holds the status-keyed handlers: whatever route produced a
// 400 or 500, these count it and supply the response body.
type OutcomeHandler struct {
	counters service.CounterAppService
	log      logger.Logger
}

// NewOutcomeHandler creates a new OutcomeHandler.
func NewOutcomeHandler(counters service.CounterAppService, log logger.Logger) *OutcomeHandler {
	return &OutcomeHandler{counters: counters, log: log}
}

// Register binds the handlers to their status codes.
func (h *OutcomeHandler) Register(reg *middleware.StatusHandlers) {
	reg.Register(http.StatusInternalServerError, h.ServerError)
	reg.Register(http.StatusBadRequest, h.ClientError)
}

// ServerError increments 500_count and answers "error".
func (h *OutcomeHandler) ServerError(c *gin.Context) {
	h.handle(c, http.StatusInternalServerError, constants.BodyServerError, h.counters.RecordServerError)
}

// ClientError increments 400_count and answers "client_and_server_is_not_degreed".
func (h *OutcomeHandler) ClientError(c *gin.Context) {
	h.handle(c, http.StatusBadRequest, constants.BodyClientError, h.counters.RecordClientError)
}

func (h *OutcomeHandler) handle(c *gin.Context, status int, body string, record func(context.Context) error) {
	if err := record(c.Request.Context()); err != nil {
		// The outcome stands even when it could not be counted.
		h.log.Warn(c.Request.Context(), "Outcome not counted", logger.Fields{"status": status})
	}

	// A committed response keeps its body; only the counter side effect applies.
	if c.Writer.Written() {
		return
	}
	c.String(status, body)
}
