package controller

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/ikkim/jewel-storefront/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAdminController_Dashboard(t *testing.T) {
	app := setupControllerTest(t)
	addToCart(t, app, 1)
	w := app.do(t, http.MethodPost, "/checkout", checkoutForm())
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["total_orders"])
	assert.Equal(t, float64(6), body["total_products"])
	assert.Len(t, body["recent_orders"], 1)
}

func TestAdminController_DownloadOrdersReport(t *testing.T) {
	app := setupControllerTest(t)
	addToCart(t, app, 2)
	w := app.do(t, http.MethodPost, "/checkout", checkoutForm())
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/admin/reports/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders-")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.OrdersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAdminController_UploadDisabled(t *testing.T) {
	app := setupControllerTest(t)

	w := app.do(t, http.MethodPost, "/admin/reports/orders", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "REPORT_UPLOAD_DISABLED")
}
