package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/internal/pricing"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

// CheckoutConfig holds the simulated processing delay
type CheckoutConfig struct {
	ProcessingDelay time.Duration
}

type CheckoutService interface {
	// Prefill returns a shipping form seeded from the signed-in user, or
	// ErrEmptyCart when there is nothing to check out
	Prefill(ctx context.Context, sessionID string) (*model.ShippingForm, error)
	PlaceOrder(ctx context.Context, sessionID string, form model.ShippingForm) (*model.Order, error)
	GetOrder(ctx context.Context, sessionID string, orderID int64) (*model.Order, error)
	ListOrders(ctx context.Context, sessionID string) ([]model.Order, error)
}

type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	promos    *PromoRegistry
	notify    notifier
	config    CheckoutConfig
	now       func() time.Time
}

func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	promos *PromoRegistry,
	broker events.Broker,
	config CheckoutConfig,
) CheckoutService {
	return &checkoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		promos:    promos,
		notify:    notifier{broker: broker},
		config:    config,
		now:       time.Now,
	}
}

func (s *checkoutService) Prefill(ctx context.Context, sessionID string) (*model.ShippingForm, error) {
	if err := s.requireItems(ctx, sessionID); err != nil {
		return nil, err
	}
	form := model.ShippingForm{}.WithDefaults()

	user, err := s.userRepo.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		form.Email = user.Email
		form.FirstName = user.FirstName
		form.LastName = user.LastName
	}
	return &form, nil
}

// PlaceOrder waits out the processing delay, then snapshots the cart into
// a confirmed order. If ctx ends during the wait nothing is written.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID string, form model.ShippingForm) (*model.Order, error) {
	if err := s.requireItems(ctx, sessionID); err != nil {
		return nil, err
	}

	form = form.WithDefaults()
	if err := form.Validate(); err != nil {
		logger.Warn("Rejected shipping form", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, ErrInvalidShippingForm
	}
	if missing := form.MissingFields(); len(missing) > 0 {
		logger.Warn("Shipping form is incomplete", map[string]interface{}{
			"session_id": sessionID,
			"missing":    missing,
		})
		return nil, &ShippingFormError{Missing: missing}
	}

	logger.Info("Processing order", map[string]interface{}{
		"session_id": sessionID,
		"delay":      s.config.ProcessingDelay.String(),
	})

	if err := wait(ctx, s.config.ProcessingDelay); err != nil {
		logger.Warn("Order processing abandoned", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	// past the delay the order always completes
	ctx = context.WithoutCancel(ctx)

	// re-read: the cart may have changed during the wait
	items, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	existing, err := s.orderRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	promo, hasPromo := s.promos.Get(sessionID)
	totals := pricing.ComputeTotals(model.PricingLines(items), s.promos.Fraction(sessionID), form.ShippingMethod)

	created := s.now()
	id := created.UnixMilli()
	if len(existing) > 0 && id <= existing[0].ID {
		id = existing[0].ID + 1
	}

	order := model.Order{
		ID:             id,
		Items:          items,
		Total:          totals.Total,
		Pricing:        totals,
		Status:         model.OrderStatusConfirmed,
		Date:           created.UTC(),
		Shipping:       form.Snapshot(),
		TrackingNumber: model.TrackingNumberFor(id),
	}
	if hasPromo {
		order.PromoCode = promo.Code
	}

	if err := s.orderRepo.Prepend(ctx, sessionID, order); err != nil {
		logger.Error("Failed to save order", err, map[string]interface{}{
			"session_id": sessionID,
			"order_id":   order.ID,
		})
		return nil, err
	}
	s.notify.changed(ctx, sessionID, kv.KeyOrders)

	if err := s.cartRepo.Clear(ctx, sessionID); err != nil {
		logger.Error("Failed to clear cart after order", err, map[string]interface{}{
			"session_id": sessionID,
			"order_id":   order.ID,
		})
		return nil, err
	}
	s.promos.Clear(sessionID)
	s.notify.changed(ctx, sessionID, kv.KeyCart)

	logger.Info("Order placed", map[string]interface{}{
		"session_id":      sessionID,
		"order_id":        order.ID,
		"total":           order.Total.String(),
		"tracking_number": order.TrackingNumber,
	})
	return &order, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, sessionID string, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, sessionID, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, sessionID string) ([]model.Order, error) {
	return s.orderRepo.FindBySession(ctx, sessionID)
}

// requireItems rejects checkout of an empty cart before anything else is
// looked at
func (s *checkoutService) requireItems(ctx context.Context, sessionID string) error {
	items, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		logger.Warn("Checkout with empty cart", map[string]interface{}{
			"session_id": sessionID,
		})
		return ErrEmptyCart
	}
	return nil
}
