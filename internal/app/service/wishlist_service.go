package service

import (
	"context"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/catalog"
	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

type WishlistService interface {
	GetWishlist(ctx context.Context, sessionID string) ([]model.Product, error)
	// Add returns false when the product was already wished for
	Add(ctx context.Context, sessionID string, productID int) (bool, error)
	Remove(ctx context.Context, sessionID string, productID int) ([]model.Product, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	catalog      *catalog.Catalog
	notify       notifier
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	products *catalog.Catalog,
	broker events.Broker,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		catalog:      products,
		notify:       notifier{broker: broker},
	}
}

// GetWishlist reads the stored list with duplicate products dropped
func (s *wishlistService) GetWishlist(ctx context.Context, sessionID string) ([]model.Product, error) {
	items, err := s.wishlistRepo.FindBySession(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return model.DedupeWishlist(items), nil
}

func (s *wishlistService) Add(ctx context.Context, sessionID string, productID int) (bool, error) {
	product, ok := s.catalog.Find(productID)
	if !ok {
		logger.Warn("Cannot add to wishlist: product not found", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return false, ErrProductNotFound
	}

	items, err := s.GetWishlist(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if model.ContainsProduct(items, productID) {
		logger.Debug("Product already in wishlist", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return false, nil
	}

	items = append(items, product)
	if err := s.save(ctx, sessionID, items); err != nil {
		return false, err
	}

	logger.Info("Product added to wishlist", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"count":      len(items),
	})
	return true, nil
}

func (s *wishlistService) Remove(ctx context.Context, sessionID string, productID int) ([]model.Product, error) {
	items, err := s.GetWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	remaining := make([]model.Product, 0, len(items))
	for _, item := range items {
		if item.ID != productID {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(items) {
		return remaining, nil
	}

	if err := s.save(ctx, sessionID, remaining); err != nil {
		return nil, err
	}

	logger.Info("Product removed from wishlist", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return remaining, nil
}

func (s *wishlistService) save(ctx context.Context, sessionID string, items []model.Product) error {
	if err := s.wishlistRepo.Save(ctx, sessionID, items); err != nil {
		logger.Error("Failed to save wishlist", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	s.notify.changed(ctx, sessionID, kv.KeyWishlist)
	return nil
}
