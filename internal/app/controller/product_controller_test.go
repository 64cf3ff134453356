package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(t *testing.T, body map[string]interface{}) []int {
	t.Helper()
	products, ok := body["products"].([]interface{})
	require.True(t, ok)
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, int(p.(map[string]interface{})["id"].(float64)))
	}
	return ids
}

func TestProductController_ListProducts(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(6), body["count"])
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, productIDs(t, body))
}

func TestProductController_ListProductsFiltered(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodGet, "/products?category=rings&sort=price-low", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []int{5, 1}, productIDs(t, body))
	assert.Equal(t, "rings", body["category_param"])

	w = app.do(t, http.MethodGet, "/products?category=rings&category=earrings", nil)
	body = decode(t, w)
	assert.Equal(t, "", body["category_param"])
	assert.Len(t, productIDs(t, body), 4)

	w = app.do(t, http.MethodGet, "/products?category=watches", nil)
	body = decode(t, w)
	assert.Empty(t, productIDs(t, body))

	// blank values are dropped, so the navigation parameter survives
	w = app.do(t, http.MethodGet, "/products?category=&category=Rings", nil)
	body = decode(t, w)
	assert.Equal(t, "rings", body["category_param"])
	assert.Equal(t, "featured", body["sort"])
	assert.Equal(t, []int{1, 5}, productIDs(t, body))
}

func TestProductController_ListProductsBadPrice(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodGet, "/products?min_price=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "min_price")
}

func TestProductController_GetProductByID(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodGet, "/products/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":3`)

	w = app.do(t, http.MethodGet, "/products/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")

	w = app.do(t, http.MethodGet, "/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_GetFilters(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodGet, "/products/filters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["categories"], 4)
	assert.Contains(t, body, "sort_keys")
}

func TestHomeController_GetHome(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodGet, "/home", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["slides"], 3)
	assert.Equal(t, float64(0), body["current_slide"])
	assert.Len(t, body["featured"], 4)
}
