package service

import (
	"testing"

	"github.com/ikkim/jewel-storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
)

type fixedSlide int

func (f fixedSlide) Current() int { return int(f) }

func TestHomeService_Home(t *testing.T) {
	home := NewHomeService(catalog.Default(), fixedSlide(2)).Home()

	assert.Len(t, home.Slides, 3)
	assert.Equal(t, 2, home.CurrentSlide)
	assert.Len(t, home.Categories, 4)
	assert.Len(t, home.Featured, 4)
	assert.Len(t, home.NewArrivals, 4)
	assert.Equal(t, 1, home.Featured[0].ID)
}

func TestHomeService_WithoutSlideshow(t *testing.T) {
	home := NewHomeService(catalog.Default(), nil).Home()
	assert.Equal(t, 0, home.CurrentSlide)
}
