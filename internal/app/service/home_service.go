package service

import (
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/catalog"
)

const homeShelfSize = 4

// SlidePosition reports which hero slide is showing
type SlidePosition interface {
	Current() int
}

type HomePage struct {
	Slides       []catalog.Slide        `json:"slides"`
	CurrentSlide int                    `json:"current_slide"`
	Categories   []catalog.CategoryTile `json:"categories"`
	Featured     []model.Product        `json:"featured"`
	NewArrivals  []model.Product        `json:"new_arrivals"`
}

type HomeService interface {
	Home() HomePage
}

type homeService struct {
	catalog   *catalog.Catalog
	slideshow SlidePosition
}

// NewHomeService builds the landing page. slideshow may be nil, which pins
// the first slide.
func NewHomeService(products *catalog.Catalog, slideshow SlidePosition) HomeService {
	return &homeService{catalog: products, slideshow: slideshow}
}

func (s *homeService) Home() HomePage {
	current := 0
	if s.slideshow != nil {
		current = s.slideshow.Current()
	}
	return HomePage{
		Slides:       catalog.HeroSlides(),
		CurrentSlide: current,
		Categories:   catalog.CategoryTiles(),
		Featured:     s.catalog.Featured(homeShelfSize),
		NewArrivals:  s.catalog.NewArrivals(homeShelfSize),
	}
}
