package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/catalog"
	"github.com/Arthur-DiasP/Delivery/internal/events"
	"github.com/Arthur-DiasP/Delivery/internal/handler"
	"github.com/Arthur-DiasP/Delivery/internal/pricing"
	"github.com/Arthur-DiasP/Delivery/internal/repository"
	"github.com/Arthur-DiasP/Delivery/internal/service"
	"github.com/Arthur-DiasP/Delivery/internal/session"
	"github.com/Arthur-DiasP/Delivery/pkg/config"
	"github.com/Arthur-DiasP/Delivery/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	serviceFee, deliveryFee, _ := cfg.Fees()
	loc, _ := cfg.Location()

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("service_fee", serviceFee.StringFixed(2)),
		zap.String("delivery_fee", deliveryFee.StringFixed(2)),
		zap.String("time_zone", loc.String()))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize components
	dynamoClient, err := repository.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create DynamoDB client", zap.Error(err))
	}
	catalogRepo := repository.NewCatalogRepository(dynamoClient, cfg.ProductTableName, cfg.OptionTableName, cfg.OfferTableName)
	couponRepo := repository.NewCouponRepository(dynamoClient, cfg.CouponTableName)
	orderRepo := repository.NewOrderRepository(dynamoClient, cfg.OrderTableName)

	cache := catalog.NewCache(catalogRepo, logger)
	if err := cache.Refresh(ctx); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	kafkaProducer, err := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.OrderTopic, logger)
	if err != nil {
		logger.Fatal("Failed to create Kafka producer", zap.Error(err))
	}
	defer kafkaProducer.Close()

	catalogConsumer, err := events.NewCatalogConsumer(cfg.KafkaBrokers, cfg.CatalogTopic, cfg.CatalogConsumerGID, logger)
	if err != nil {
		logger.Fatal("Failed to create Kafka consumer", zap.Error(err))
	}
	defer catalogConsumer.Close()

	checks := []handler.HealthCheck{
		{Name: "kafka", Check: kafkaProducer.HealthCheck},
		{Name: "catalog", Check: func(context.Context) error {
			if cache.LastRefresh().IsZero() {
				return errors.New("catalog not loaded")
			}
			return nil
		}},
	}

	var store session.Store
	switch cfg.StoreBackend {
	case "memory":
		store = session.NewMemoryStore()
	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		redisStore := session.NewRedisStore(redisClient, cfg.DurableTTL, cfg.SessionTTL)
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: redisStore.HealthCheck})
		store = redisStore
	}

	ledger := service.NewLedger(store, pricing.Fees{Service: serviceFee, Delivery: deliveryFee})
	cartService := service.NewCartService(ledger, cache, logger)
	couponService := service.NewCouponService(ledger, couponRepo, loc, cfg.CouponLookupTimeout, logger)
	checkoutService := service.NewCheckoutService(ledger, orderRepo, kafkaProducer, cfg.CheckoutTimeout, logger)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		catalogConsumer.Run(ctx, func(ctx context.Context, ev events.CatalogChangedEvent) error {
			logger.Info("Catalog change received",
				zap.String("entity", ev.Entity),
				zap.String("entity_id", ev.EntityID))
			return cache.Refresh(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		cache.Run(ctx, cfg.CatalogRefreshInterval)
	}()

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	router.Static("/css", filepath.Join(cfg.StaticDir, "css"))

	v1 := router.Group("/api/v1")
	v1.GET("/health", handler.Health("storefront", checks...))

	api := v1.Group("", middleware.Session())
	handler.RegisterRoutes(api,
		handler.NewCatalogHandler(cache),
		handler.NewCartHandler(cartService, couponService, logger),
		handler.NewCheckoutHandler(checkoutService, logger))

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	stop()

	wg.Wait()
	logger.Info("Server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.ClientIDHeader, middleware.SessionIDHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.ClientIDHeader, middleware.SessionIDHeader, middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return cors.New(c)
}
