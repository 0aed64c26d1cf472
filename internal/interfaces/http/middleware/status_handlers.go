package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/metricsvc/pkg/logger"
)

// StatusHandler runs after a request resolved to the status it is registered for.
// It may still write the body when the route only set a status.
type StatusHandler func(c *gin.Context)

// StatusHandlers binds side effects to response status codes instead of routes,
// so any endpoint resolving to a registered status triggers the same handler.
type StatusHandlers struct {
	mu       sync.RWMutex
	handlers map[int]StatusHandler
	log      logger.Logger
}

// NewStatusHandlers creates an empty registry.
func NewStatusHandlers() *StatusHandlers {
	return &StatusHandlers{handlers: make(map[int]StatusHandler), log: logger.NewNoopLogger()}
}

// WithLogger sets the logger used for panics raised by status handlers.
func (s *StatusHandlers) WithLogger(log logger.Logger) *StatusHandlers {
	s.log = log
	return s
}

// Register binds h to status, replacing any previous handler.
func (s *StatusHandlers) Register(status int, h StatusHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[status] = h
}

// Lookup returns the handler registered for status.
func (s *StatusHandlers) Lookup(status int) (StatusHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[status]
	return h, ok
}

// Middleware returns a Gin middleware that dispatches on the resolved status
// once the rest of the chain has finished.
func (s *StatusHandlers) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if h, ok := s.Lookup(c.Writer.Status()); ok {
			s.dispatch(c, h)
		}
	}
}

// dispatch runs h, turning a panic into a bare 500 like Recovery does.
func (s *StatusHandlers) dispatch(c *gin.Context, h StatusHandler) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error(c.Request.Context(), "Panic recovered in status handler", fmt.Errorf("panic: %v", rec), logger.Fields{
				"path":   c.Request.URL.Path,
				"status": c.Writer.Status(),
			})
			if !c.Writer.Written() {
				c.Status(http.StatusInternalServerError)
				c.Writer.WriteHeaderNow()
			}
			c.Abort()
		}
	}()
	h(c)
}
