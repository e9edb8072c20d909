package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rktiwari00/woocart/internal/api"
	"github.com/rktiwari00/woocart/internal/auth"
	"github.com/rktiwari00/woocart/internal/cart"
	"github.com/rktiwari00/woocart/internal/catalog"
	"github.com/rktiwari00/woocart/internal/checkout"
	"github.com/rktiwari00/woocart/internal/config"
	"github.com/rktiwari00/woocart/internal/notification"
	"github.com/rktiwari00/woocart/internal/storage"
	"github.com/rktiwari00/woocart/internal/wishlist"
	"github.com/rktiwari00/woocart/internal/woo"
)

func main() {
	configPath := flag.String("config", "config/store.yaml", "path to store config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()
	log.Printf("Using %s storage", cfg.Storage.Driver)

	wooClient := woo.NewClient(
		cfg.WooCommerce.BaseURL,
		cfg.WooCommerce.Version,
		cfg.WooCommerce.ConsumerKey,
		cfg.WooCommerce.ConsumerSecret,
	)

	cartService := cart.NewService(store, cfg.Shipping)
	catalogService := catalog.NewService(wooClient, store)
	notificationService := notification.NewService(store)
	authService := auth.NewService(wooClient, store, cartService)
	checkoutService := checkout.NewService(wooClient, cartService, notificationService, cfg.Payment, cfg.Shipping)
	wishlistService := wishlist.NewService(store, catalogService)

	// Hydrate persisted state before serving
	cartService.Hydrate(ctx)
	notificationService.Hydrate(ctx)
	authService.Hydrate(ctx)
	wishlistService.Hydrate(ctx)

	router := api.NewRouter(api.RouterConfig{
		Cart:           api.NewCartHandler(cartService, catalogService, cfg.Payment.CurrencySymbol),
		Catalog:        api.NewCatalogHandler(catalogService, wooClient, cfg.Features.EnableSearch),
		Checkout:       api.NewCheckoutHandler(checkoutService),
		Orders:         api.NewOrdersHandler(wooClient, authService),
		Auth:           api.NewAuthHandler(authService),
		Notifications:  api.NewNotificationHandler(notificationService),
		Wishlist:       api.NewWishlistHandler(wishlistService),
		EnableReviews:  cfg.Features.EnableReviews,
		EnableWishlist: cfg.Features.EnableWishlist,
		RequestTimeout: 30 * time.Second,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Printf("Storefront listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := store.RunMigrations(cfg.Storage.MigrationsPath); err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStore(client), func() { client.Close() }, nil

	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewMongoStore(db), func() { db.Client().Disconnect(ctx) }, nil
	}

	// Unreachable: config validation rejects other drivers.
	return nil, nil, errors.New("unknown storage driver")
}
