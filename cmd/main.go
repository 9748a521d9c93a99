package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/cache"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/events"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/handler"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/repository"
	"github.com/rakeshgadupudi-git/ImperialHub/internal/service"
	"github.com/rakeshgadupudi-git/ImperialHub/pkg/config"
	"github.com/rakeshgadupudi-git/ImperialHub/pkg/middleware"
	pkgtls "github.com/rakeshgadupudi-git/ImperialHub/pkg/tls"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := repository.NewMongoDatabase(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal("Failed to create indexes:", err)
	}
	cancel()

	// Repositories
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	demoRepo := repository.NewDemoRequestRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Optional product cache
	var productCache *cache.ProductCache
	if cfg.RedisEnabled {
		redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(redisCtx, cfg)
		redisCancel()
		if err != nil {
			logger.Warn("Redis unavailable, product cache disabled", zap.Error(err))
		} else {
			productCache = cache.NewProductCache(redisClient, logger)
			defer redisClient.Close()
		}
	}

	// Optional event producer
	var publisher service.EventPublisher
	if cfg.KafkaEnabled {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		defer producer.Close()
		publisher = producer
	}

	// Services
	productService := service.NewProductService(productRepo, productCache, logger)
	authService := service.NewAuthService(userRepo, logger)
	chatService := service.NewChatService(chatRepo, logger)
	demoService := service.NewDemoService(demoRepo, productRepo, logger)
	checkoutService := service.NewCheckoutService(productRepo, purchaseRepo, orderRepo, productCache, publisher, logger)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, purchaseRepo, productRepo, logger)

	// Handlers
	productHandler := handler.NewProductHandler(productService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	demoHandler := handler.NewDemoHandler(demoService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	router.GET("/metrics", middleware.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/featured", productHandler.FeaturedProducts)
		api.GET("/products/slug/:slug", productHandler.GetProductBySlug)
		api.GET("/products/user/:userId", productHandler.SellerProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.POST("/products", productHandler.CreateProduct)
		api.PUT("/products/:id", productHandler.UpdateProduct)
		api.POST("/products/:id/reviews", productHandler.AddReview)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.POST("/chat", chatHandler.SendMessage)
		api.GET("/chat/conversations/:userId", chatHandler.ListConversations)
		api.GET("/chat/:productId/:userId/:otherUserId", chatHandler.GetConversation)
		api.PUT("/chat/read/:productId/:userId/:otherUserId", chatHandler.MarkRead)

		api.POST("/demo-request", demoHandler.CreateRequest)
		api.GET("/demo-request/seller/:sellerId", demoHandler.SellerRequests)
		api.PUT("/demo-request/:id", demoHandler.UpdateStatus)

		api.POST("/checkout", checkoutHandler.Checkout)

		api.POST("/purchase", purchaseHandler.CreatePurchase)
		api.GET("/purchase/product/:productId", purchaseHandler.ProductPurchases)
		api.GET("/purchase/analytics/:sellerId", purchaseHandler.SellerAnalytics)

		api.GET("/orders/user/:userId", orderHandler.BuyerOrders)
		api.GET("/orders/seller/:sellerId", orderHandler.SellerOrders)
		api.GET("/orders/:orderId", orderHandler.GetOrder)

		api.POST("/seed", productHandler.SeedProducts)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	tlsConfig, err := pkgtls.LoadTLSConfig(&cfg.TLS, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	if tlsConfig != nil {
		srv.TLSConfig = tlsConfig
		go pkgtls.WatchCertificates(&cfg.TLS, logger)
	}
	defer pkgtls.Cleanup()

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.Bool("tls", tlsConfig != nil))

		var err error
		if tlsConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
