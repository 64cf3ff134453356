package model

import (
	"fmt"

	"github.com/ikkim/jewel-storefront/internal/pricing"
)

// CartItem is one cart line. The same product may appear on several lines,
// each with its own LineID.
type CartItem struct {
	Product
	LineID   string `json:"line_id"`
	Quantity int    `json:"quantity"`
}

func (i CartItem) Validate() error {
	if err := i.Product.Validate(); err != nil {
		return err
	}
	if i.LineID == "" {
		return fmt.Errorf("%w: cart line for product %d has no id", ErrInvalidRecord, i.ID)
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("%w: cart line %s has quantity %d", ErrInvalidRecord, i.LineID, i.Quantity)
	}
	return nil
}

// PricingLines converts cart lines into pricing input
func PricingLines(items []CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity})
	}
	return lines
}

// ItemCount sums quantities across lines (the header badge count)
func ItemCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
