package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/config"
	"github.com/ikkim/jewel-storefront/internal/app/controller"
	"github.com/ikkim/jewel-storefront/internal/middleware"
)

type Router struct {
	homeController     *controller.HomeController
	productController  *controller.ProductController
	cartController     *controller.CartController
	wishlistController *controller.WishlistController
	orderController    *controller.OrderController
	authController     *controller.AuthController
	adminController    *controller.AdminController
	wsController       *controller.WSController
	sessionMiddleware  *middleware.SessionMiddleware
	config             *config.Config
}

func NewRouter(
	homeController *controller.HomeController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	orderController *controller.OrderController,
	authController *controller.AuthController,
	adminController *controller.AdminController,
	wsController *controller.WSController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		homeController:     homeController,
		productController:  productController,
		cartController:     cartController,
		wishlistController: wishlistController,
		orderController:    orderController,
		authController:     authController,
		adminController:    adminController,
		wsController:       wsController,
		sessionMiddleware:  sessionMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Storefront API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/home", r.homeController.GetHome)

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/filters", r.productController.GetFilters)
			products.GET("/:id", r.productController.GetProductByID)
		}

		session := v1.Group("")
		session.Use(r.sessionMiddleware.Resolve())
		{
			cart := session.Group("/cart")
			{
				cart.GET("", r.cartController.GetCart)
				cart.POST("", r.cartController.AddToCart)
				cart.POST("/from-wishlist", r.cartController.AddFromWishlist)
				cart.POST("/promo", r.cartController.ApplyPromo)
				cart.GET("/summary", r.cartController.GetSummary)
				cart.PUT("/:id", r.cartController.UpdateCartItem)
				cart.DELETE("/:id", r.cartController.RemoveFromCart)
			}

			wishlist := session.Group("/wishlist")
			{
				wishlist.GET("", r.wishlistController.GetWishlist)
				wishlist.POST("", r.wishlistController.AddToWishlist)
				wishlist.DELETE("/:product_id", r.wishlistController.RemoveFromWishlist)
			}

			session.GET("/checkout", r.orderController.GetCheckout)
			session.POST("/checkout", r.orderController.PlaceOrder)

			orders := session.Group("/orders")
			{
				orders.GET("", r.orderController.GetOrders)
				orders.GET("/:id", r.orderController.GetOrderByID)
			}

			auth := session.Group("/auth")
			{
				auth.POST("/signup", r.authController.Signup)
				auth.POST("/login", r.authController.Login)
				auth.POST("/logout", r.authController.Logout)
				auth.GET("/me", r.authController.GetMe)
			}

			admin := session.Group("/admin")
			{
				admin.GET("/dashboard", r.adminController.GetDashboard)
				admin.GET("/reports/orders", r.adminController.DownloadOrdersReport)
				admin.POST("/reports/orders", r.adminController.UploadOrdersReport)
			}

			session.GET("/ws", r.wsController.Connect)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.SessionTokenHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.SessionTokenHeader, middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			// credentials cannot be combined with a literal wildcard
			cfg.AllowOriginFunc = func(string) bool { return true }
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = allowedOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(cfg)
}
