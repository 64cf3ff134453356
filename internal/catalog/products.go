package catalog

import (
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func originalPrice(s string) *decimal.Decimal {
	p := price(s)
	return &p
}

// defaultProducts is the fixed storefront catalog in featured order
func defaultProducts() []model.Product {
	return []model.Product{
		{
			ID:            1,
			Name:          "Diamond Eternity Ring",
			Price:         price("2499.99"),
			OriginalPrice: originalPrice("3199.99"),
			Image:         "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=400&h=400&fit=crop",
			Rating:        4.9,
			Reviews:       127,
			Category:      model.CategoryRings,
			Material:      model.MaterialGold,
			IsNew:         true,
			Description:   "Stunning diamond eternity ring crafted in 18k gold",
		},
		{
			ID:            2,
			Name:          "Pearl Drop Earrings",
			Price:         price("899.99"),
			OriginalPrice: originalPrice("1199.99"),
			Image:         "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=400&h=400&fit=crop",
			Rating:        4.8,
			Reviews:       89,
			Category:      model.CategoryEarrings,
			Material:      model.MaterialSilver,
			IsSale:        true,
			Description:   "Elegant pearl drop earrings in sterling silver",
		},
		{
			ID:          3,
			Name:        "Gold Chain Necklace",
			Price:       price("1299.99"),
			Image:       "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=400&h=400&fit=crop",
			Rating:      4.7,
			Reviews:     156,
			Category:    model.CategoryNecklaces,
			Material:    model.MaterialGold,
			Description: "Classic gold chain necklace, perfect for layering",
		},
		{
			ID:          4,
			Name:        "Sapphire Tennis Bracelet",
			Price:       price("1899.99"),
			Image:       "https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=400&h=400&fit=crop",
			Rating:      4.9,
			Reviews:     203,
			Category:    model.CategoryBracelets,
			Material:    model.MaterialPlatinum,
			Description: "Luxurious sapphire tennis bracelet in platinum",
		},
		{
			ID:          5,
			Name:        "Rose Gold Wedding Band",
			Price:       price("799.99"),
			Image:       "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=400&h=400&fit=crop",
			Rating:      4.6,
			Reviews:     94,
			Category:    model.CategoryRings,
			Material:    model.MaterialRoseGold,
			Description: "Beautiful rose gold wedding band with subtle texture",
		},
		{
			ID:          6,
			Name:        "Diamond Stud Earrings",
			Price:       price("1599.99"),
			Image:       "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=400&h=400&fit=crop",
			Rating:      4.8,
			Reviews:     178,
			Category:    model.CategoryEarrings,
			Material:    model.MaterialPlatinum,
			Description: "Classic diamond stud earrings in platinum setting",
		},
	}
}

// Slide is one hero banner on the home page
type Slide struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CTA         string `json:"cta"`
}

// HeroSlides returns the home page banners in rotation order
func HeroSlides() []Slide {
	return []Slide{
		{
			Title:       "Luxury Jewelry Collection",
			Subtitle:    "Discover Timeless Elegance",
			Description: "Handcrafted pieces that tell your unique story",
			Image:       "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=1200&h=600&fit=crop",
			CTA:         "Shop Now",
		},
		{
			Title:       "Diamond Dreams",
			Subtitle:    "Sparkle Like Never Before",
			Description: "Premium diamonds for life's precious moments",
			Image:       "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=1200&h=600&fit=crop",
			CTA:         "Explore Diamonds",
		},
		{
			Title:       "Fashion Forward",
			Subtitle:    "Statement Pieces",
			Description: "Bold designs for the modern trendsetter",
			Image:       "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=1200&h=600&fit=crop",
			CTA:         "View Collection",
		},
	}
}

// CategoryTile is a home page shortcut into a category listing
type CategoryTile struct {
	Category model.ProductCategory `json:"category"`
	Name     string                `json:"name"`
	Image    string                `json:"image"`
	Count    int                   `json:"count"` // advertised collection size
}

func CategoryTiles() []CategoryTile {
	return []CategoryTile{
		{model.CategoryRings, "Rings", "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=300&h=300&fit=crop", 156},
		{model.CategoryNecklaces, "Necklaces", "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=300&h=300&fit=crop", 89},
		{model.CategoryEarrings, "Earrings", "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=300&h=300&fit=crop", 124},
		{model.CategoryBracelets, "Bracelets", "https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=300&h=300&fit=crop", 67},
	}
}
