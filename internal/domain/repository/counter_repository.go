package repository

import (
	"context"

	"github.com/turtacn/metricsvc/internal/domain/models"
)

// CounterStore holds the process-wide outcome counters.
// Implementations must make Increment atomic: N concurrent calls add exactly N.
type CounterStore interface {
	// Increment adds one to name. Names outside the fixed set fail with
	// errors.ErrUnknownCounter and leave every counter untouched.
	Increment(ctx context.Context, name models.CounterName) error

	// Snapshot returns the live value of every counter.
	Snapshot(ctx context.Context) (models.Snapshot, error)
}
