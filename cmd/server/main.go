package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/jewel-storefront/config"
	"github.com/ikkim/jewel-storefront/internal/app/controller"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/app/service"
	"github.com/ikkim/jewel-storefront/internal/catalog"
	"github.com/ikkim/jewel-storefront/internal/db"
	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/internal/middleware"
	"github.com/ikkim/jewel-storefront/internal/router"
	"github.com/ikkim/jewel-storefront/internal/scheduler"
	"github.com/ikkim/jewel-storefront/internal/storage"
	ws "github.com/ikkim/jewel-storefront/internal/websocket"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/ikkim/jewel-storefront/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := cfg.Server.EffectiveLogLevel()
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Server.LogFormat,
		EnableColor: cfg.Server.LogFormat == "console",
	})

	logger.Info("Starting storefront server", map[string]interface{}{
		"environment":  cfg.Server.Environment,
		"port":         cfg.Server.Port,
		"log_level":    logLevel,
		"store_driver": cfg.Store.Driver,
		"broker":       cfg.Store.EffectiveBroker(),
	})

	store := openStore(cfg)
	defer closeBackends(cfg)

	broker := openBroker(cfg)

	// Websocket hub
	hub := ws.NewHub(broker)
	go hub.Run()
	defer hub.Stop()

	// Slideshow
	slideshow := scheduler.NewSlideshowScheduler(cfg.Slideshow.Schedule, len(catalog.HeroSlides()), hub)
	if err := slideshow.Start(); err != nil {
		logger.Fatal("Failed to start slideshow scheduler", err)
	}
	defer slideshow.Stop()

	// Report uploads
	var objects storage.ObjectStorage
	if cfg.S3.Enabled() {
		objects = storage.NewS3Storage(context.Background(), cfg.S3)
		logger.Info("Report uploads enabled", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
			"region": cfg.S3.Region,
		})
	}

	products := catalog.Default()
	promos := service.NewPromoRegistry()

	// Initialize repositories
	cartRepo := repository.NewCartRepository(store)
	wishlistRepo := repository.NewWishlistRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	userRepo := repository.NewUserRepository(store)

	// Initialize services
	homeService := service.NewHomeService(products, slideshow)
	cartService := service.NewCartService(cartRepo, products, promos, broker)
	wishlistService := service.NewWishlistService(wishlistRepo, products, broker)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, userRepo, promos, broker, service.CheckoutConfig{
		ProcessingDelay: cfg.Simulation.CheckoutDelay,
	})
	authService := service.NewAuthService(userRepo, broker, service.AuthConfig{
		LoginDelay: cfg.Simulation.LoginDelay,
	})
	dashboardService := service.NewDashboardService(orderRepo, userRepo, products, objects)

	// Setup router
	r := router.NewRouter(
		controller.NewHomeController(homeService),
		controller.NewProductController(products),
		controller.NewCartController(cartService),
		controller.NewWishlistController(wishlistService),
		controller.NewOrderController(checkoutService, cfg.Simulation.EmptyCartRedirect),
		controller.NewAuthController(authService),
		controller.NewAdminController(dashboardService),
		controller.NewWSController(hub, cfg.CORS.AllowedOrigins),
		middleware.NewSessionMiddleware(cfg.Session.Secret, cfg.Session.Expiry),
		cfg,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": server.Addr,
			"pid":     os.Getpid(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown did not complete", err)
	}

	logger.Info("Server stopped successfully")
}

func openStore(cfg *config.Config) kv.Store {
	switch cfg.Store.Driver {
	case "redis":
		client, err := redis.Shared(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		return kv.NewRedisStore(client)

	case "postgres":
		if err := db.Initialize(&cfg.Database); err != nil {
			logger.Fatal("Failed to initialize database", err)
		}
		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to run migrations", err)
		}
		return kv.NewGormStore(db.GetDB())

	default:
		logger.Warn("Using in-memory session store; data is lost on restart")
		return kv.NewMemoryStore()
	}
}

func openBroker(cfg *config.Config) events.Broker {
	if cfg.Store.EffectiveBroker() != "redis" {
		return events.NewLocalBroker()
	}
	client, err := redis.Shared(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", err)
	}
	return events.NewRedisBroker(client)
}

func closeBackends(cfg *config.Config) {
	if cfg.Store.Driver == "postgres" {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}
	if err := redis.Close(); err != nil {
		logger.Error("Failed to close Redis connection", err)
	}
}
