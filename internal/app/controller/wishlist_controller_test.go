package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistController_Flow(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodPost, "/wishlist", map[string]interface{}{"product_id": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, decode(t, w)["added"])

	w = app.do(t, http.MethodPost, "/wishlist", map[string]interface{}{"product_id": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["added"])

	w = app.do(t, http.MethodGet, "/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = app.do(t, http.MethodDelete, "/wishlist/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	w = app.do(t, http.MethodDelete, "/wishlist/two", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistController_UnknownProduct(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodPost, "/wishlist", map[string]interface{}{"product_id": 77})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
