package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"recivo/internal/config"
	"recivo/internal/database"
	"recivo/internal/handlers"
	"recivo/internal/logger"
	"recivo/internal/middleware"
	"recivo/internal/models"
	"recivo/internal/services"
	"recivo/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "recivo/internal/docs" // Import swagger docs
)

// @title           Recivo API
// @version         1.0
// @description     Recivo is a receivables securitization marketplace where merchants convert outstanding invoices into tradeable securities and investors purchase them for a return.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Redis backs the idempotency store for purchase and settlement
	// retries. Without it those endpoints still work, just unguarded.
	var rdb *redis.Client
	if appConfig.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: appConfig.RedisAddr, DB: appConfig.RedisDB})
		log.Infof("Idempotency store enabled at %s", appConfig.RedisAddr)
	} else {
		log.Warn("REDIS_ADDR not set; idempotency protection disabled")
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	walletService := services.NewWalletService(db)
	notificationService := services.NewNotificationService(db)
	auditService := services.NewAuditService(db)
	receivableService := services.NewReceivableService(db)
	securityService := services.NewSecurityService(db, notificationService)
	watchlistService := services.NewWatchlistService(db)
	tradeService := services.NewTradeService(db, walletService, watchlistService, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	walletHandler := handlers.NewWalletHandler(walletService)
	receivableHandler := handlers.NewReceivableHandler(receivableService, auditService)
	securityHandler := handlers.NewSecurityHandler(securityService, tradeService, auditService)
	marketplaceHandler := handlers.NewMarketplaceHandler(securityService, tradeService, auditService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// idempotent wraps a handler with the redis-backed retry guard when
	// redis is configured.
	idempotent := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if rdb == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.Idempotency(rdb, 24 * time.Hour), h}
	}

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and wallet
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.GET("/wallet", walletHandler.GetBalance)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/read-all", notificationHandler.MarkAllRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)
	notifications.DELETE("", notificationHandler.ClearNotifications)

	// Merchant routes
	merchant := protected.Group("/")
	merchant.Use(middleware.RequireRole(models.RoleMerchant))

	receivables := merchant.Group("/receivables")
	receivables.POST("", receivableHandler.CreateReceivable)
	receivables.GET("", receivableHandler.GetReceivables)
	receivables.GET("/:id", receivableHandler.GetReceivableByID)
	receivables.PUT("/:id", receivableHandler.UpdateReceivable)
	receivables.DELETE("/:id", receivableHandler.DeleteReceivable)

	securities := merchant.Group("/securities")
	securities.POST("", securityHandler.Securitize)
	securities.GET("", securityHandler.GetSecurities)
	securities.POST("/:id/list", securityHandler.List)
	securities.POST("/:id/settle", idempotent(securityHandler.Settle)...)
	securities.POST("/:id/cancel", securityHandler.Cancel)

	// Investor routes
	investor := protected.Group("/")
	investor.Use(middleware.RequireRole(models.RoleInvestor))

	marketplace := investor.Group("/marketplace")
	marketplace.GET("", marketplaceHandler.Browse)
	marketplace.GET("/:id", marketplaceHandler.GetListing)
	marketplace.POST("/:id/purchase", idempotent(marketplaceHandler.Purchase)...)
	marketplace.POST("/watchlist/purchase", idempotent(marketplaceHandler.PurchaseWatchlist)...)

	watchlist := investor.Group("/watchlist")
	watchlist.GET("", watchlistHandler.GetWatchlist)
	watchlist.POST("", watchlistHandler.AddToWatchlist)
	watchlist.DELETE("/:id", watchlistHandler.RemoveFromWatchlist)
	watchlist.DELETE("", watchlistHandler.ClearWatchlist)

	investor.GET("/portfolio", marketplaceHandler.GetPortfolio)

	log.Infof("Starting Recivo backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
