// Package memory provides the in-process CounterStore.
package memory

import (
	"context"
	"sync/atomic"

	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/internal/domain/repository"
	"github.com/turtacn/metricsvc/pkg/errors"
)

var _ repository.CounterStore = (*CounterStore)(nil)

// CounterStore keeps one atomic integer per counter.
type CounterStore struct {
	requestCount     atomic.Int64
	clientErrorCount atomic.Int64
	serverErrorCount atomic.Int64
}

// NewCounterStore returns a store with every counter at zero.
func NewCounterStore() *CounterStore {
	return &CounterStore{}
}

func (s *CounterStore) counter(name models.CounterName) *atomic.Int64 {
	switch name {
	case models.CounterRequest:
		return &s.requestCount
	case models.CounterClientError:
		return &s.clientErrorCount
	case models.CounterServerError:
		return &s.serverErrorCount
	}
	return nil
}

// Increment adds one to name.
func (s *CounterStore) Increment(_ context.Context, name models.CounterName) error {
	c := s.counter(name)
	if c == nil {
		return errors.ErrUnknownCounter.WithMessage("unknown counter %q", name)
	}
	c.Add(1)
	return nil
}

// Snapshot loads every counter. Each value is read atomically; the three
// loads are not one transaction.
func (s *CounterStore) Snapshot(_ context.Context) (models.Snapshot, error) {
	return models.Snapshot{
		ClientErrorCount: s.clientErrorCount.Load(),
		ServerErrorCount: s.serverErrorCount.Load(),
		RequestCount:     s.requestCount.Load(),
	}, nil
}
