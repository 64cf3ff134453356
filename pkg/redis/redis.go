// Package redis owns the process-wide Redis connection. The session store
// and the change broker share one client when both run on Redis.
package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ikkim/jewel-storefront/config"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var (
	mu     sync.Mutex
	shared *redis.Client
)

// Connect opens a client for cfg and pings it
func Connect(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// Shared returns the process-wide client, connecting on first use
func Shared(cfg *config.RedisConfig) (*redis.Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if shared != nil {
		return shared, nil
	}

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})
	client, err := Connect(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		return nil, err
	}

	logger.Info("Redis connection established")
	shared = client
	return shared, nil
}

// Close closes the shared client if one was opened
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if shared == nil {
		return nil
	}
	logger.Info("Closing Redis connection")
	err := shared.Close()
	shared = nil
	return err
}
