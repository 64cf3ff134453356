// Package catalog holds the fixed product list and the listing page's
// filter and sort engine.
package catalog

import (
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/shopspring/decimal"
)

// Catalog is an immutable product list indexed by id
type Catalog struct {
	products []model.Product
	byID     map[int]int
}

// New builds a catalog over products, keeping their order as featured order
func New(products []model.Product) *Catalog {
	c := &Catalog{
		products: append([]model.Product(nil), products...),
		byID:     make(map[int]int, len(products)),
	}
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

// Default is the storefront's six-product catalog
func Default() *Catalog {
	return New(defaultProducts())
}

// All returns a copy of every product in featured order
func (c *Catalog) All() []model.Product {
	return append([]model.Product(nil), c.products...)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Find(id int) (model.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Search(criteria Criteria) []model.Product {
	return FilterAndSort(c.products, criteria)
}

// Featured returns the first n products in featured order
func (c *Catalog) Featured(n int) []model.Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	return append([]model.Product(nil), c.products[:n]...)
}

// NewArrivals returns up to n products, newest first
func (c *Catalog) NewArrivals(n int) []model.Product {
	newest := FilterAndSort(c.products, Criteria{Sort: SortNewest})
	if n < len(newest) {
		newest = newest[:n]
	}
	return newest
}

// FacetCount is one selectable filter value with its product count
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets describes the filter sidebar
type Facets struct {
	Categories []FacetCount    `json:"categories"`
	Materials  []FacetCount    `json:"materials"`
	PriceFloor decimal.Decimal `json:"price_floor"`
	PriceCeil  decimal.Decimal `json:"price_ceiling"`
	SortKeys   []SortKey       `json:"sort_keys"`
}

func (c *Catalog) Facets() Facets {
	categories := make(map[model.ProductCategory]int)
	materials := make(map[model.Material]int)
	for _, p := range c.products {
		categories[p.Category]++
		materials[p.Material]++
	}

	f := Facets{
		PriceFloor: PriceFloor,
		PriceCeil:  PriceCeiling,
		SortKeys:   []SortKey{SortFeatured, SortNewest, SortPriceLow, SortPriceHigh, SortRating},
	}
	for _, cat := range model.Categories {
		f.Categories = append(f.Categories, FacetCount{Value: string(cat), Count: categories[cat]})
	}
	for _, m := range model.Materials {
		f.Materials = append(f.Materials, FacetCount{Value: string(m), Count: materials[m]})
	}
	return f
}
