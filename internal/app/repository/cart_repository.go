package repository

import (
	"context"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

type CartRepository interface {
	FindBySession(ctx context.Context, sessionID string) ([]model.CartItem, error)
	Save(ctx context.Context, sessionID string, items []model.CartItem) error
	Clear(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	store kv.Store
}

func NewCartRepository(store kv.Store) CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) FindBySession(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	items, err := loadList[model.CartItem](ctx, r.store, sessionID, kv.KeyCart)
	if err != nil {
		logger.Error("Failed to read cart from store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	logger.Debug("Cart read from store", map[string]interface{}{
		"session_id": sessionID,
		"lines":      len(items),
	})
	return items, nil
}

func (r *cartRepository) Save(ctx context.Context, sessionID string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	if err := save(ctx, r.store, sessionID, kv.KeyCart, items); err != nil {
		logger.Error("Failed to write cart to store", err, map[string]interface{}{
			"session_id": sessionID,
			"lines":      len(items),
		})
		return err
	}

	logger.Debug("Cart written to store", map[string]interface{}{
		"session_id": sessionID,
		"lines":      len(items),
	})
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := remove(ctx, r.store, sessionID, kv.KeyCart); err != nil {
		logger.Error("Failed to remove cart from store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}
