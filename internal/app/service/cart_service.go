package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/catalog"
	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/internal/pricing"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// CartSummary is the cart page: lines, badge count and price breakdown
type CartSummary struct {
	Items                 []model.CartItem       `json:"items"`
	ItemCount             int                    `json:"item_count"`
	Promo                 *AppliedPromo          `json:"promo,omitempty"`
	ShippingMethod        pricing.ShippingMethod `json:"shipping_method"`
	Totals                pricing.Totals         `json:"totals"`
	FreeShippingRemaining decimal.Decimal        `json:"free_shipping_remaining"`
}

type CartService interface {
	GetCart(ctx context.Context, sessionID string) ([]model.CartItem, error)
	AddProduct(ctx context.Context, sessionID string, productID int) (*model.CartItem, error)
	AddFromWishlist(ctx context.Context, sessionID string, productID int) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) ([]model.CartItem, error)
	RemoveItem(ctx context.Context, sessionID, lineID string) ([]model.CartItem, error)
	ApplyPromo(ctx context.Context, sessionID, code string) (*AppliedPromo, error)
	Summary(ctx context.Context, sessionID string, method pricing.ShippingMethod) (*CartSummary, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	catalog  *catalog.Catalog
	promos   *PromoRegistry
	notify   notifier
}

func NewCartService(
	cartRepo repository.CartRepository,
	products *catalog.Catalog,
	promos *PromoRegistry,
	broker events.Broker,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		catalog:  products,
		promos:   promos,
		notify:   notifier{broker: broker},
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	items, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return items, nil
}

// AddProduct appends a new line with quantity 1, even when the product is
// already in the cart
func (s *cartService) AddProduct(ctx context.Context, sessionID string, productID int) (*model.CartItem, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})

	product, ok := s.catalog.Find(productID)
	if !ok {
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil, ErrProductNotFound
	}

	items, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line := model.CartItem{Product: product, LineID: uuid.NewString(), Quantity: 1}
	items = append(items, line)
	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"line_id":    line.LineID,
		"lines":      len(items),
	})
	return &line, nil
}

// AddFromWishlist bumps the first line of the same product by one, or
// adds a new line when there is none
func (s *cartService) AddFromWishlist(ctx context.Context, sessionID string, productID int) (*model.CartItem, error) {
	product, ok := s.catalog.Find(productID)
	if !ok {
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil, ErrProductNotFound
	}

	items, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range items {
		if items[i].ID == productID {
			index = i
			break
		}
	}
	if index >= 0 {
		items[index].Quantity++
	} else {
		items = append(items, model.CartItem{Product: product, LineID: uuid.NewString(), Quantity: 1})
		index = len(items) - 1
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}

	line := items[index]
	logger.Info("Wishlist product moved into cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   line.Quantity,
	})
	return &line, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) ([]model.CartItem, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, lineID)
	}

	items, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].LineID == lineID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		logger.Warn("Cart line not found", map[string]interface{}{
			"session_id": sessionID,
			"line_id":    lineID,
		})
		return nil, ErrCartItemNotFound
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}

	logger.Info("Cart quantity updated", map[string]interface{}{
		"session_id": sessionID,
		"line_id":    lineID,
		"quantity":   quantity,
	})
	return items, nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, lineID string) ([]model.CartItem, error) {
	items, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	remaining := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.LineID != lineID {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(items) {
		logger.Warn("Cart line not found", map[string]interface{}{
			"session_id": sessionID,
			"line_id":    lineID,
		})
		return nil, ErrCartItemNotFound
	}

	if err := s.save(ctx, sessionID, remaining); err != nil {
		return nil, err
	}

	logger.Info("Cart line removed", map[string]interface{}{
		"session_id": sessionID,
		"line_id":    lineID,
	})
	return remaining, nil
}

// ApplyPromo accepts a known code case-insensitively. An unknown code
// leaves any previously applied promo in place.
func (s *cartService) ApplyPromo(ctx context.Context, sessionID, code string) (*AppliedPromo, error) {
	fraction, ok := pricing.LookupPromo(code)
	if !ok {
		logger.Warn("Rejected promo code", map[string]interface{}{
			"session_id": sessionID,
			"code":       code,
		})
		return nil, ErrInvalidPromoCode
	}

	promo := AppliedPromo{
		Code:       pricing.NormalizePromoCode(code),
		Fraction:   fraction,
		PercentOff: pricing.PercentOff(fraction),
	}
	s.promos.Apply(sessionID, promo)

	logger.Info("Promo code applied", map[string]interface{}{
		"session_id":  sessionID,
		"code":        promo.Code,
		"percent_off": promo.PercentOff,
	})
	return &promo, nil
}

func (s *cartService) Summary(ctx context.Context, sessionID string, method pricing.ShippingMethod) (*CartSummary, error) {
	items, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !method.Valid() {
		method = pricing.ShippingStandard
	}

	totals := pricing.ComputeTotals(model.PricingLines(items), s.promos.Fraction(sessionID), method)
	summary := &CartSummary{
		Items:                 items,
		ItemCount:             model.ItemCount(items),
		ShippingMethod:        method,
		Totals:                totals,
		FreeShippingRemaining: pricing.FreeShippingRemaining(totals.Subtotal),
	}
	if promo, ok := s.promos.Get(sessionID); ok {
		summary.Promo = &promo
	}
	return summary, nil
}

func (s *cartService) save(ctx context.Context, sessionID string, items []model.CartItem) error {
	if err := s.cartRepo.Save(ctx, sessionID, items); err != nil {
		logger.Error("Failed to save cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	s.notify.changed(ctx, sessionID, kv.KeyCart)
	return nil
}
