// Package pricing computes cart totals: subtotal, promo discount, shipping,
// tax and grand total. All amounts are decimals rounded to cents.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// CurrencyPlaces is the number of decimal places amounts are rounded to
const CurrencyPlaces = 2

var (
	TaxRate               = decimal.RequireFromString("0.08")
	FreeShippingThreshold = decimal.NewFromInt(500)
	StandardShippingFee   = decimal.NewFromInt(25)
	ExpressShippingFee    = decimal.NewFromInt(15)

	oneCent = decimal.New(1, -CurrencyPlaces)
)

// Valid reports whether m is a known shipping method
func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// ParseShippingMethod maps user input to a method; empty input means standard
func ParseShippingMethod(s string) (ShippingMethod, error) {
	m := ShippingMethod(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ShippingStandard, nil
	}
	if !m.Valid() {
		return "", fmt.Errorf("unknown shipping method %q", s)
	}
	return m, nil
}

// Line is one priced cart line
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals aggregates computed pricing components
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Discount     decimal.Decimal `json:"discount"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// Subtotal sums unit price times quantity, ignoring non-positive quantities
func Subtotal(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return subtotal.Round(CurrencyPlaces)
}

// ShippingFee applies the shipping policy. Express is a flat fee and
// overrides the free standard shipping threshold.
func ShippingFee(subtotal decimal.Decimal, method ShippingMethod) decimal.Decimal {
	if method == ShippingExpress {
		return ExpressShippingFee
	}
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return StandardShippingFee
}

// ComputeTotals prices the lines. discountFraction is clamped to [0, 1].
// Each component is rounded to cents before the total is summed, so
// Total == Subtotal - Discount + Shipping + Tax holds exactly.
func ComputeTotals(lines []Line, discountFraction decimal.Decimal, method ShippingMethod) Totals {
	if discountFraction.IsNegative() {
		discountFraction = decimal.Zero
	}
	if discountFraction.GreaterThan(decimal.NewFromInt(1)) {
		discountFraction = decimal.NewFromInt(1)
	}

	subtotal := Subtotal(lines)
	discount := subtotal.Mul(discountFraction).Round(CurrencyPlaces)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(TaxRate).Round(CurrencyPlaces)
	shipping := ShippingFee(subtotal, method)

	return Totals{
		Subtotal:     subtotal,
		DiscountRate: discountFraction,
		Discount:     discount,
		Shipping:     shipping,
		Tax:          tax,
		Total:        taxable.Add(shipping).Add(tax),
	}
}

// FreeShippingRemaining is how much more the subtotal needs before standard
// shipping becomes free. Shipping is free only above the threshold, so a
// subtotal of exactly the threshold still needs one cent. Zero once
// ShippingFee waives the charge.
func FreeShippingRemaining(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FreeShippingThreshold.Sub(subtotal).Add(oneCent)
}
