package catalog

import (
	"sort"
	"strings"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// Bounds of the price slider
var (
	PriceFloor   = decimal.Zero
	PriceCeiling = decimal.NewFromInt(5000)
)

// Criteria is the current filter state of the listing page
type Criteria struct {
	Query      string
	Categories []model.ProductCategory
	Materials  []model.Material
	MinPrice   decimal.NullDecimal // unset means PriceFloor
	MaxPrice   decimal.NullDecimal // unset means PriceCeiling
	Sort       SortKey
}

// CriteriaFromParam seeds a fresh filter state from the ?category=
// navigation parameter, which may repeat. Blank values are ignored.
func CriteriaFromParam(categories ...string) Criteria {
	c := Criteria{Sort: SortFeatured}
	for _, category := range categories {
		if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
			c.Categories = append(c.Categories, model.ProductCategory(category))
		}
	}
	return c
}

// CategoryParam is the inverse of CriteriaFromParam: the navigation
// parameter reflects the selection only when exactly one category is chosen
func CategoryParam(selected []model.ProductCategory) string {
	if len(selected) == 1 {
		return string(selected[0])
	}
	return ""
}

func (c Criteria) priceRange() (decimal.Decimal, decimal.Decimal) {
	lo, hi := PriceFloor, PriceCeiling
	if c.MinPrice.Valid {
		lo = c.MinPrice.Decimal
	}
	if c.MaxPrice.Valid {
		hi = c.MaxPrice.Decimal
	}
	return lo, hi
}

func (c Criteria) matches(p model.Product) bool {
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}

	if len(c.Categories) > 0 && !containsCategory(c.Categories, p.Category) {
		return false
	}
	if len(c.Materials) > 0 && !containsMaterial(c.Materials, p.Material) {
		return false
	}

	lo, hi := c.priceRange()
	return p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi)
}

// FilterAndSort returns the products matching c in the requested order.
// The input slice is not modified. Unknown sort keys keep featured order.
func FilterAndSort(products []model.Product, c Criteria) []model.Product {
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if c.matches(p) {
			result = append(result, p)
		}
	}

	var less func(a, b model.Product) bool
	switch c.Sort {
	case SortNewest:
		less = func(a, b model.Product) bool { return a.ID > b.ID }
	case SortPriceLow:
		less = func(a, b model.Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b model.Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortRating:
		less = func(a, b model.Product) bool { return a.Rating > b.Rating }
	default:
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result
}

func containsCategory(set []model.ProductCategory, c model.ProductCategory) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

func containsMaterial(set []model.Material, m model.Material) bool {
	for _, s := range set {
		if s == m {
			return true
		}
	}
	return false
}
