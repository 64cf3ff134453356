package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

type validatable interface {
	Validate() error
}

// loadList reads a JSON array under key. A malformed array reads as empty;
// entries failing validation are logged and skipped so the valid ones
// survive the next write. Only store failures are errors.
func loadList[T validatable](ctx context.Context, store kv.Store, sessionID, key string) ([]T, error) {
	raw, ok, err := kv.Namespace(store, sessionID).Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Discarding malformed collection", map[string]interface{}{
			"session_id": sessionID,
			"key":        key,
			"error":      err.Error(),
		})
		return []T{}, nil
	}

	valid := make([]T, 0, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			logger.Warn("Skipping invalid collection entry", map[string]interface{}{
				"session_id": sessionID,
				"key":        key,
				"index":      i,
				"error":      err.Error(),
			})
			continue
		}
		valid = append(valid, item)
	}
	return valid, nil
}

// loadOne reads a single JSON object under key. nil when absent,
// malformed or invalid.
func loadOne[T validatable](ctx context.Context, store kv.Store, sessionID, key string) (*T, error) {
	raw, ok, err := kv.Namespace(store, sessionID).Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" || raw == "null" {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warn("Discarding malformed record", map[string]interface{}{
			"session_id": sessionID,
			"key":        key,
			"error":      err.Error(),
		})
		return nil, nil
	}
	if err := value.Validate(); err != nil {
		logger.Warn("Discarding invalid record", map[string]interface{}{
			"session_id": sessionID,
			"key":        key,
			"error":      err.Error(),
		})
		return nil, nil
	}
	return &value, nil
}

// save writes value as JSON under key
func save(ctx context.Context, store kv.Store, sessionID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := kv.Namespace(store, sessionID).Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func remove(ctx context.Context, store kv.Store, sessionID, key string) error {
	if err := kv.Namespace(store, sessionID).Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
