package main

import (
	"context"                        // context package is needed for Redis operations
	"log"                            // log package is needed for logging
	"otp_market/internal/api"        // Custom package for API handlers
	"otp_market/internal/config"     // Custom package for configuration
	"otp_market/internal/middleware" // Custom package for middleware
	"otp_market/internal/service"    // Order and funding workflows
	"otp_market/internal/store"      // Store handles
	"otp_market/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Store handles, passed explicitly; no package-level client state
	accounts := store.NewAccountStore(db)    // Account directory
	wallets := store.NewWalletStore(db)      // Wallet ledger
	orders := store.NewOrderStore(db)        // Order store
	funding := store.NewFundingStore(db)     // Funding request store
	activities := store.NewActivityStore(db) // Activity log
	txm := store.NewTxManager(db)            // Transaction scope

	// Workflows
	activity := service.NewActivityLogger(activities) // Best-effort audit trail
	orderSvc := service.NewOrderService(accounts, wallets, orders, activity, txm, cfg.LegacyPricing)
	fundingSvc := service.NewFundingService(funding, activity, cfg.MinFunding)

	// Redis-backed read cache
	cache := utils.NewCache(redisClient)

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Every request carries a deadline; a stalled store call fails retryable
	r.Use(middleware.RequestTimeoutMiddleware(cfg.RequestTimeout))

	// Auth routes
	r.POST("/user", api.SignupHandler(accounts, wallets, txm, activity)) // Signup endpoint
	r.GET("/user", api.LoginHandler(accounts, activity, cfg.JWTSecret)) // Login endpoint

	// Session routes (protected by JWT)
	authGroup := r.Group("/")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/wallet", api.GetWalletHandler(wallets, cache))           // Wallet balance endpoint
	authGroup.POST("/orders", api.PlaceOrderHandler(orderSvc, cache))        // Order placement endpoint
	authGroup.GET("/orders", api.ListOrdersHandler(orders, cache))           // Order history endpoint
	authGroup.POST("/funding", api.CreateFundingHandler(fundingSvc, cache))  // Funding request endpoint
	authGroup.GET("/activity", api.ListActivityHandler(activities, cache))   // Recent activity endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(accounts))
	adminGroup.GET("/users", api.ListAccountsHandler(accounts, cache))                              // List accounts endpoint
	adminGroup.GET("/funding", api.ListFundingHandler(funding, cache))                              // List funding requests endpoint
	adminGroup.POST("/funding/:id/approve", api.ApproveFundingHandler(funding, wallets, txm, activity, cache)) // Approve funding endpoint
	adminGroup.POST("/funding/:id/reject", api.RejectFundingHandler(funding, activity, cache))      // Reject funding endpoint
	adminGroup.POST("/orders/:id/status", api.UpdateOrderStatusHandler(orders, cache))              // Fulfillment transition endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
