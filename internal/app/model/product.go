package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidRecord marks a persisted record that failed validation
var ErrInvalidRecord = errors.New("invalid record")

type ProductCategory string

const (
	CategoryRings     ProductCategory = "rings"
	CategoryNecklaces ProductCategory = "necklaces"
	CategoryEarrings  ProductCategory = "earrings"
	CategoryBracelets ProductCategory = "bracelets"
)

// Categories lists every category in display order
var Categories = []ProductCategory{CategoryRings, CategoryNecklaces, CategoryEarrings, CategoryBracelets}

func (c ProductCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Material string

const (
	MaterialGold     Material = "gold"
	MaterialSilver   Material = "silver"
	MaterialPlatinum Material = "platinum"
	MaterialRoseGold Material = "rose-gold"
)

// Materials lists every material in display order
var Materials = []Material{MaterialGold, MaterialSilver, MaterialPlatinum, MaterialRoseGold}

func (m Material) Valid() bool {
	for _, known := range Materials {
		if m == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"` // struck-through price when on sale
	Image         string           `json:"image"`
	Rating        float64          `json:"rating"`  // 0-5
	Reviews       int              `json:"reviews"` // review count
	Category      ProductCategory  `json:"category"`
	Material      Material         `json:"material"`
	IsNew         bool             `json:"is_new,omitempty"`
	IsSale        bool             `json:"is_sale,omitempty"`
	Description   string           `json:"description"`
}

// Validate checks the fields a persisted product must carry
func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: product id %d", ErrInvalidRecord, p.ID)
	case p.Name == "":
		return fmt.Errorf("%w: product %d has no name", ErrInvalidRecord, p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: product %d has negative price", ErrInvalidRecord, p.ID)
	case !p.Category.Valid():
		return fmt.Errorf("%w: product %d has category %q", ErrInvalidRecord, p.ID, p.Category)
	case !p.Material.Valid():
		return fmt.Errorf("%w: product %d has material %q", ErrInvalidRecord, p.ID, p.Material)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: product %d has rating %v", ErrInvalidRecord, p.ID, p.Rating)
	case p.Reviews < 0:
		return fmt.Errorf("%w: product %d has negative review count", ErrInvalidRecord, p.ID)
	}
	return nil
}
