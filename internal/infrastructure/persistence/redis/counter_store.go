package redis

import (
	"context"

	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/internal/domain/repository"
	"github.com/turtacn/metricsvc/pkg/errors"
	"github.com/turtacn/metricsvc/pkg/logger"
)

var _ repository.CounterStore = (*CounterStore)(nil)

// CounterStore keeps the counters as fields of a single Redis hash.
// HINCRBY is atomic on the server, so replicas sharing the hash never lose updates.
type CounterStore struct {
	conn *RedisConnection
	key  string
	log  logger.Logger
}

type counterHash struct {
	ClientErrorCount int64 `redis:"400_count"`
	ServerErrorCount int64 `redis:"500_count"`
	RequestCount     int64 `redis:"request_count"`
}

// NewCounterStore binds a store to the hash at key.
func NewCounterStore(conn *RedisConnection, key string, log logger.Logger) *CounterStore {
	return &CounterStore{conn: conn, key: key, log: log}
}

// Reset writes every counter as zero. It is called once at startup so the
// counters follow process lifetime like the in-memory store.
func (s *CounterStore) Reset(ctx context.Context) error {
	values := make(map[string]interface{}, 3)
	for _, name := range models.AllCounters() {
		values[string(name)] = 0
	}
	if err := s.conn.Client().HSet(ctx, s.key, values).Err(); err != nil {
		return errors.ErrStoreUnavailable.WithError(err)
	}
	s.log.Info(ctx, "Counter hash reset", logger.Fields{"key": s.key})
	return nil
}

// Increment adds one to name.
func (s *CounterStore) Increment(ctx context.Context, name models.CounterName) error {
	if !name.Valid() {
		return errors.ErrUnknownCounter.WithMessage("unknown counter %q", name)
	}
	if err := s.conn.Client().HIncrBy(ctx, s.key, string(name), 1).Err(); err != nil {
		return errors.ErrStoreUnavailable.WithError(err)
	}
	return nil
}

// Snapshot reads the whole hash in one round trip. Missing fields read as zero.
func (s *CounterStore) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var h counterHash
	if err := s.conn.Client().HGetAll(ctx, s.key).Scan(&h); err != nil {
		return models.Snapshot{}, errors.ErrStoreUnavailable.WithError(err)
	}
	return models.Snapshot{
		ClientErrorCount: h.ClientErrorCount,
		ServerErrorCount: h.ServerErrorCount,
		RequestCount:     h.RequestCount,
	}, nil
}
