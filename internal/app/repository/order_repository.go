package repository

import (
	"context"
	"errors"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository keeps a session's orders newest first. Orders are only
// ever added.
type OrderRepository interface {
	FindBySession(ctx context.Context, sessionID string) ([]model.Order, error)
	FindByID(ctx context.Context, sessionID string, id int64) (*model.Order, error)
	Prepend(ctx context.Context, sessionID string, order model.Order) error
}

type orderRepository struct {
	store kv.Store
}

func NewOrderRepository(store kv.Store) OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) FindBySession(ctx context.Context, sessionID string) ([]model.Order, error) {
	orders, err := loadList[model.Order](ctx, r.store, sessionID, kv.KeyOrders)
	if err != nil {
		logger.Error("Failed to read orders from store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, sessionID string, id int64) (*model.Order, error) {
	orders, err := r.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}

	logger.Debug("Order not found", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   id,
	})
	return nil, ErrOrderNotFound
}

func (r *orderRepository) Prepend(ctx context.Context, sessionID string, order model.Order) error {
	orders, err := r.FindBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	orders = append([]model.Order{order}, orders...)
	if err := save(ctx, r.store, sessionID, kv.KeyOrders, orders); err != nil {
		logger.Error("Failed to write orders to store", err, map[string]interface{}{
			"session_id": sessionID,
			"order_id":   order.ID,
		})
		return err
	}

	logger.Debug("Order written to store", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   order.ID,
		"orders":     len(orders),
	})
	return nil
}
