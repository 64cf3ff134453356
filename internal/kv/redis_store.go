package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps keys as plain redis strings
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Failed to read key from Redis", err, map[string]interface{}{
			"key": key,
		})
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		logger.Error("Failed to write key to Redis", err, map[string]interface{}{
			"key": key,
		})
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		logger.Error("Failed to delete key from Redis", err, map[string]interface{}{
			"key": key,
		})
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
