package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/pkg/constants"
	"github.com/turtacn/metricsvc/pkg/logger"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"serve", "exporter", "snapshot"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestSnapshotCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, constants.PathMetrics, req.URL.Path)
		_, _ = rw.Write([]byte(`{"400_count":2,"500_count":1,"request_count":3}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"snapshot", "--url", server.URL, "--timeout", "1s"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, models.Snapshot{ClientErrorCount: 2, ServerErrorCount: 1, RequestCount: 3}, snap)
}

func TestSnapshotCommand_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"snapshot", "--url", server.URL})
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestNewCounterStore_MemoryDefault(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: constants.StoreBackendMemory}}

	store, deps, closeStore, err := newCounterStore(context.Background(), cfg, logger.NewNoopLogger())
	require.NoError(t, err)
	defer closeStore()

	assert.Empty(t, deps)
	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot{}, snap)
}

func TestNewCounterStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	key := constants.DefaultRedisCounterKey
	mr.HSet(key, "request_count", "41")

	cfg := &config.Config{Store: config.StoreConfig{
		Backend: constants.StoreBackendRedis,
		Redis:   config.RedisConfig{Address: mr.Addr(), Key: key},
	}}

	store, deps, closeStore, err := newCounterStore(context.Background(), cfg, logger.NewNoopLogger())
	require.NoError(t, err)
	defer closeStore()

	assert.Contains(t, deps, "redis")

	// Counters restart from zero on every process start.
	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot{}, snap)
}

func TestNewCounterStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := &config.Config{Store: config.StoreConfig{
		Backend: constants.StoreBackendRedis,
		Redis:   config.RedisConfig{Address: addr, Key: constants.DefaultRedisCounterKey},
	}}

	_, _, _, err := newCounterStore(context.Background(), cfg, logger.NewNoopLogger())
	assert.Error(t, err)
}
