// Package redis provides Redis connection management and the Redis-backed CounterStore.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/metricsvc/internal/config"
	"github.com/turtacn/metricsvc/pkg/logger"
)

// RedisConnection manages Redis client lifecycle.
type RedisConnection struct {
	config        *config.RedisConfig
	client        redis.UniversalClient
	logger        logger.Logger
	isInitialized bool
}

// NewRedisConnection creates a new Redis connection manager instance.
// Call Connect before using the client.
func NewRedisConnection(cfg *config.RedisConfig, log logger.Logger) *RedisConnection {
	return &RedisConnection{
		config: cfg,
		logger: log,
	}
}

// NewRedisConnectionFromClient wraps an already constructed client.
func NewRedisConnectionFromClient(client redis.UniversalClient, log logger.Logger) *RedisConnection {
	return &RedisConnection{
		config:        &config.RedisConfig{},
		client:        client,
		logger:        log,
		isInitialized: true,
	}
}

// Connect establishes the connection and validates connectivity with a ping.
func (rc *RedisConnection) Connect(ctx context.Context) error {
	if rc.isInitialized {
		rc.logger.Warn(ctx, "Redis connection already initialized")
		return nil
	}

	rc.setDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:         rc.config.Address,
		Password:     rc.config.Password,
		DB:           rc.config.DB,
		PoolSize:     rc.config.PoolSize,
		MinIdleConns: rc.config.MinIdleConns,
		DialTimeout:  rc.config.DialTimeout,
		ReadTimeout:  rc.config.ReadTimeout,
		WriteTimeout: rc.config.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, rc.config.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		rc.logger.Error(ctx, "Redis ping failed", err, logger.Fields{"addr": rc.config.Address})
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	rc.client = client
	rc.isInitialized = true
	rc.logger.Info(ctx, "Redis connection established successfully", logger.Fields{
		"addr":      rc.config.Address,
		"db":        rc.config.DB,
		"pool_size": rc.config.PoolSize,
	})

	return nil
}

func (rc *RedisConnection) setDefaults() {
	if rc.config.Address == "" {
		rc.config.Address = "localhost:6379"
	}
	if rc.config.PoolSize == 0 {
		rc.config.PoolSize = 10
	}
	if rc.config.DialTimeout == 0 {
		rc.config.DialTimeout = 5 * time.Second
	}
	if rc.config.ReadTimeout == 0 {
		rc.config.ReadTimeout = 3 * time.Second
	}
	if rc.config.WriteTimeout == 0 {
		rc.config.WriteTimeout = 3 * time.Second
	}
}

// Client returns the Redis client, nil before Connect.
func (rc *RedisConnection) Client() redis.UniversalClient {
	if !rc.isInitialized {
		return nil
	}
	return rc.client
}

// Ping checks Redis server connectivity.
func (rc *RedisConnection) Ping(ctx context.Context) error {
	if !rc.isInitialized {
		return fmt.Errorf("redis connection not initialized")
	}
	return rc.client.Ping(ctx).Err()
}

// Close gracefully closes Redis connection and releases resources.
func (rc *RedisConnection) Close() error {
	if !rc.isInitialized {
		return nil
	}

	if err := rc.client.Close(); err != nil {
		rc.logger.Error(context.Background(), "Failed to close Redis connection", err)
		return err
	}

	rc.isInitialized = false
	rc.logger.Info(context.Background(), "Redis connection closed successfully")
	return nil
}
