package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ikkim/jewel-storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

type OrderStatus string // order lifecycle state

const (
	OrderStatusConfirmed  OrderStatus = "confirmed"  // placed, the only state produced
	OrderStatusProcessing OrderStatus = "processing" // being packed
	OrderStatusShipped    OrderStatus = "shipped"    // handed to carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // received
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID             int64           `json:"id"`      // creation time in unix ms
	Items          []CartItem      `json:"items"`   // cart snapshot
	Total          decimal.Decimal `json:"total"`   // grand total
	Pricing        pricing.Totals  `json:"pricing"` // breakdown
	PromoCode      string          `json:"promo_code,omitempty"`
	Status         OrderStatus     `json:"status"`
	Date           time.Time       `json:"date"`
	Shipping       ShippingForm    `json:"shipping_info"`   // form snapshot
	TrackingNumber string          `json:"tracking_number"` // LJ + last 8 digits of the id
}

// TrackingNumberFor derives the tracking number from an order id
func TrackingNumberFor(id int64) string {
	digits := strconv.FormatInt(id, 10)
	if len(digits) > 8 {
		digits = digits[len(digits)-8:]
	}
	return "LJ" + digits
}

func (o Order) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("%w: order id %d", ErrInvalidRecord, o.ID)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: order %d has status %q", ErrInvalidRecord, o.ID, o.Status)
	}
	if o.Total.IsNegative() {
		return fmt.Errorf("%w: order %d has negative total", ErrInvalidRecord, o.ID)
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("order %d: %w", o.ID, err)
		}
	}
	return o.Shipping.Validate()
}

// UnitsPerCategory counts ordered units by product category
func UnitsPerCategory(orders []Order) map[ProductCategory]int {
	units := make(map[ProductCategory]int)
	for _, order := range orders {
		for _, item := range order.Items {
			units[item.Category] += item.Quantity
		}
	}
	return units
}
