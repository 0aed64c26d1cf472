package service

import (
	"context"

	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/internal/domain/repository"
	"github.com/turtacn/metricsvc/pkg/logger"
)

// CounterAppService defines the outcome-counting use cases the HTTP layer drives.
type CounterAppService interface {
	RecordAction(ctx context.Context) error
	RecordServerError(ctx context.Context) error
	RecordClientError(ctx context.Context) error
	Snapshot(ctx context.Context) (models.Snapshot, error)
}

// IncrementObserver is notified of every increment attempt.
type IncrementObserver interface {
	RecordIncrement(counter string, err error)
}

type counterAppServiceImpl struct {
	store    repository.CounterStore
	observer IncrementObserver
	log      logger.Logger
}

// NewCounterAppService creates a new CounterAppService. observer may be nil.
func NewCounterAppService(store repository.CounterStore, observer IncrementObserver, log logger.Logger) CounterAppService {
	return &counterAppServiceImpl{
		store:    store,
		observer: observer,
		log:      log,
	}
}

func (s *counterAppServiceImpl) RecordAction(ctx context.Context) error {
	return s.increment(ctx, models.CounterRequest)
}

func (s *counterAppServiceImpl) RecordServerError(ctx context.Context) error {
	return s.increment(ctx, models.CounterServerError)
}

func (s *counterAppServiceImpl) RecordClientError(ctx context.Context) error {
	return s.increment(ctx, models.CounterClientError)
}

func (s *counterAppServiceImpl) Snapshot(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		s.log.ForContext(ctx).Error(ctx, "Failed to read counters", err)
		return models.Snapshot{}, err
	}
	return snap, nil
}

func (s *counterAppServiceImpl) increment(ctx context.Context, name models.CounterName) error {
	err := s.store.Increment(ctx, name)
	if s.observer != nil {
		s.observer.RecordIncrement(name.String(), err)
	}
	if err != nil {
		s.log.ForContext(ctx).Error(ctx, "Failed to increment counter", err, logger.Fields{"counter": name.String()})
		return err
	}
	s.log.ForContext(ctx).Debug(ctx, "Counter incremented", logger.Fields{"counter": name.String()})
	return nil
}
