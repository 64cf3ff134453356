package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/app/service"
	"github.com/ikkim/jewel-storefront/internal/catalog"
	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/internal/middleware"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type testApp struct {
	router *gin.Engine
	token  string
}

func setupControllerTest(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemoryStore()
	broker := events.NewLocalBroker()
	promos := service.NewPromoRegistry()
	products := catalog.Default()

	cartRepo := repository.NewCartRepository(store)
	wishlistRepo := repository.NewWishlistRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	userRepo := repository.NewUserRepository(store)

	cartService := service.NewCartService(cartRepo, products, promos, broker)
	wishlistService := service.NewWishlistService(wishlistRepo, products, broker)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, userRepo, promos, broker, service.CheckoutConfig{})
	authService := service.NewAuthService(userRepo, broker, service.AuthConfig{})
	dashboardService := service.NewDashboardService(orderRepo, userRepo, products, nil)

	productController := NewProductController(products)
	homeController := NewHomeController(service.NewHomeService(products, nil))
	cartController := NewCartController(cartService)
	wishlistController := NewWishlistController(wishlistService)
	orderController := NewOrderController(checkoutService, 2*time.Second)
	authController := NewAuthController(authService)
	adminController := NewAdminController(dashboardService)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.GET("/home", homeController.GetHome)
	router.GET("/products", productController.ListProducts)
	router.GET("/products/filters", productController.GetFilters)
	router.GET("/products/:id", productController.GetProductByID)

	session := router.Group("")
	session.Use(middleware.NewSessionMiddleware(testSecret, time.Hour).Resolve())
	session.GET("/cart", cartController.GetCart)
	session.POST("/cart", cartController.AddToCart)
	session.POST("/cart/from-wishlist", cartController.AddFromWishlist)
	session.POST("/cart/promo", cartController.ApplyPromo)
	session.GET("/cart/summary", cartController.GetSummary)
	session.PUT("/cart/:id", cartController.UpdateCartItem)
	session.DELETE("/cart/:id", cartController.RemoveFromCart)
	session.GET("/wishlist", wishlistController.GetWishlist)
	session.POST("/wishlist", wishlistController.AddToWishlist)
	session.DELETE("/wishlist/:product_id", wishlistController.RemoveFromWishlist)
	session.GET("/checkout", orderController.GetCheckout)
	session.POST("/checkout", orderController.PlaceOrder)
	session.GET("/orders", orderController.GetOrders)
	session.GET("/orders/:id", orderController.GetOrderByID)
	session.POST("/auth/signup", authController.Signup)
	session.POST("/auth/login", authController.Login)
	session.POST("/auth/logout", authController.Logout)
	session.GET("/auth/me", authController.GetMe)
	session.GET("/admin/dashboard", adminController.GetDashboard)
	session.GET("/admin/reports/orders", adminController.DownloadOrdersReport)
	session.POST("/admin/reports/orders", adminController.UploadOrdersReport)

	return &testApp{router: router}
}

// do sends a request on the app's session, adopting any token it is issued
func (app *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if app.token != "" {
		req.Header.Set(middleware.SessionTokenHeader, app.token)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if token := w.Header().Get(middleware.SessionTokenHeader); token != "" {
		app.token = token
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
