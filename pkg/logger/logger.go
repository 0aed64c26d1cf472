// Package logger provides the structured logging contract used by metricsvc.
// Concrete implementations live in internal/infrastructure/monitoring.
package logger

import (
	"context"
	"time"
)

// Fields is a set of key-value pairs attached to a log entry
type Fields map[string]interface{}

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields ...Fields)

	// Info logs an informational message
	Info(ctx context.Context, msg string, fields ...Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs a fatal message and exits the application
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields creates a new logger with additional fields
	WithFields(fields Fields) Logger

	// ForContext returns the request-scoped logger stored in ctx, if any
	ForContext(ctx context.Context) Logger
}

// Duration renders a duration in milliseconds for log fields.
func Duration(d time.Duration) int64 {
	return d.Milliseconds()
}
