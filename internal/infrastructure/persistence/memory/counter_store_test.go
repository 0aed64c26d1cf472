package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/pkg/errors"
)

func TestCounterStore_StartsAtZero(t *testing.T) {
	snap, err := NewCounterStore().Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot{}, snap)
}

func TestCounterStore_Increment(t *testing.T) {
	ctx := context.Background()
	store := NewCounterStore()

	require.NoError(t, store.Increment(ctx, models.CounterRequest))
	require.NoError(t, store.Increment(ctx, models.CounterRequest))
	require.NoError(t, store.Increment(ctx, models.CounterServerError))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot{RequestCount: 2, ServerErrorCount: 1}, snap)
}

func TestCounterStore_UnknownCounter(t *testing.T) {
	ctx := context.Background()
	store := NewCounterStore()

	err := store.Increment(ctx, models.CounterName("404_count"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownCounter))

	snap, _ := store.Snapshot(ctx)
	assert.Equal(t, models.Snapshot{}, snap)
}

func TestCounterStore_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewCounterStore()

	const workers, perWorker = 16, 500
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_ = store.Increment(ctx, models.CounterRequest)
			}
		}()
	}
	wg.Wait()

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), snap.RequestCount)
}
