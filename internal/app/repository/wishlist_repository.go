package repository

import (
	"context"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

type WishlistRepository interface {
	FindBySession(ctx context.Context, sessionID string) ([]model.Product, error)
	Save(ctx context.Context, sessionID string, items []model.Product) error
}

type wishlistRepository struct {
	store kv.Store
}

func NewWishlistRepository(store kv.Store) WishlistRepository {
	return &wishlistRepository{store: store}
}

func (r *wishlistRepository) FindBySession(ctx context.Context, sessionID string) ([]model.Product, error) {
	items, err := loadList[model.Product](ctx, r.store, sessionID, kv.KeyWishlist)
	if err != nil {
		logger.Error("Failed to read wishlist from store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) Save(ctx context.Context, sessionID string, items []model.Product) error {
	if items == nil {
		items = []model.Product{}
	}
	if err := save(ctx, r.store, sessionID, kv.KeyWishlist, items); err != nil {
		logger.Error("Failed to write wishlist to store", err, map[string]interface{}{
			"session_id": sessionID,
			"items":      len(items),
		})
		return err
	}
	return nil
}
