package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"evergrain-service/internal/cart"
	"evergrain-service/internal/catalog"
	"evergrain-service/internal/clients"
	"evergrain-service/internal/config"
	"evergrain-service/internal/events"
	"evergrain-service/internal/handlers"
	"evergrain-service/internal/middleware"
	"evergrain-service/internal/retry"
	"evergrain-service/internal/store"
)

// @title Evergrain Storefront API
// @version 1.0.0
// @description Bilingual handcrafted-goods storefront: catalog sync, product management, cart and checkout-by-email

// @contact.name Evergrain Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8088
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize the persistent store: Redis when reachable, otherwise an
	// in-process store with the same byte quota. The catalog survives either
	// way; only cross-restart persistence is lost without Redis.
	var kv store.KV
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (falling back to in-memory store)", err)
		kv = store.NewMemoryKV(cfg.StoreQuota)
	} else {
		redisClient := redis.NewClient(redisOpts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("WARNING: Failed to connect to Redis: %v (falling back to in-memory store)", err)
			kv = store.NewMemoryKV(cfg.StoreQuota)
		} else {
			log.Println("✓ Redis connected successfully")
			kv = store.NewRedisKV(redisClient)
		}
		cancel()
	}
	st := store.New(kv, cfg.StoreNamespace, logger)

	// Initialize event publisher for the audit trail only if NATS_URL is set
	var eventsPublisher *events.Publisher
	natsURL := os.Getenv("NATS_URL")
	if natsURL != "" {
		eventsPublisher, err = events.NewPublisher(natsURL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer eventsPublisher.Close()

	// Seed the catalog from cache for instant availability, then reconcile
	// against the published snapshot in the background.
	cat := catalog.New(st, nil, eventsPublisher, logger)
	fetchPolicy := retry.Policy{MaxAttempts: cfg.FetchMaxAttempts, Delay: cfg.FetchRetryDelay}
	snapshotClient := clients.NewSnapshotClient(cfg.CatalogURL(), fetchPolicy)
	reconciler := catalog.NewReconciler(cat, snapshotClient, logger)
	reconciler.Start(context.Background())
	log.Println("✓ Catalog seeded from cache, reconciliation started")

	// Initialize cart aggregator and email dispatch
	carts := cart.New(st, logger)
	emailClient := clients.NewEmailClient(clients.EmailConfig{
		BaseURL:           cfg.EmailJSBaseURL,
		ServiceID:         cfg.EmailJSServiceID,
		OrderTemplateID:   cfg.EmailJSOrderTemplateID,
		ContactTemplateID: cfg.EmailJSContactTemplateID,
		PublicKey:         cfg.EmailJSPublicKey,
		Recipient:         cfg.OrderRecipient,
	})

	// Initialize handlers
	productsHandler := handlers.NewProductsHandler(cat, reconciler)
	cartHandler := handlers.NewCartHandler(carts, cat)
	checkoutHandler := handlers.NewCheckoutHandler(carts, cat, emailClient, eventsPublisher)
	mediaHandler := handlers.NewMediaHandler(cfg.DriveAPIKey)
	authHandler := handlers.NewAuthHandler(st, cfg.AdminUsername, cfg.AdminPassword)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// Public storefront endpoints
	storefront := router.Group("/api/v1/storefront")
	{
		storefront.GET("/products", productsHandler.GetProducts)
		storefront.GET("/products/:id", productsHandler.GetProduct)
		storefront.GET("/catalog", productsHandler.GetSnapshot)
		storefront.GET("/status", productsHandler.GetStatus)
		storefront.GET("/governorates", productsHandler.GetGovernorates)
		storefront.GET("/shipping", checkoutHandler.ShippingQuote)
		storefront.GET("/media", mediaHandler.GetMedia)

		storefront.POST("/cart", cartHandler.CreateCart)
		storefront.GET("/cart/:cartId", cartHandler.GetCart)
		storefront.DELETE("/cart/:cartId", cartHandler.ClearCart)
		storefront.POST("/cart/:cartId/items", cartHandler.AddItem)
		storefront.PUT("/cart/:cartId/items/:productId", cartHandler.SetQuantity)
		storefront.DELETE("/cart/:cartId/items/:productId", cartHandler.RemoveItem)

		storefront.POST("/checkout", checkoutHandler.Checkout)
		storefront.POST("/contact", checkoutHandler.Contact)
	}

	// Admin login
	router.POST("/api/v1/auth/login", authHandler.Login)

	// Admin endpoints (session token required)
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AdminAuth(st))
	{
		admin.POST("/logout", authHandler.Logout)

		admin.POST("/products", productsHandler.CreateProduct)
		admin.PUT("/products/:id", productsHandler.UpdateProduct)
		admin.DELETE("/products/:id", productsHandler.DeleteProduct)

		admin.GET("/catalog/export", productsHandler.ExportSnapshot)
		admin.GET("/products/export", productsHandler.ExportXLSX)
		admin.POST("/catalog/sync", productsHandler.SyncCatalog)
		admin.POST("/catalog/media/purge", productsHandler.PurgeMedia)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Evergrain service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down evergrain-service...")
	log.Println("Evergrain service stopped")
}
