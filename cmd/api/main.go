package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"marketdash/internal/config"
	"marketdash/internal/database"
	"marketdash/internal/handlers"
	"marketdash/internal/logger"
	"marketdash/internal/marketdata"
	"marketdash/internal/middleware"
	"marketdash/internal/services"
	"marketdash/internal/validator"
)

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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Market data client shared by every quote consumer
	quoteClient := marketdata.NewClient(
		&http.Client{Timeout: 15 * time.Second},
		appConfig.QuoteBaseURL,
		appConfig.QuoteCacheTTL,
	)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db, quoteClient)
	screenerService := services.NewScreenerService(quoteClient, config.DefaultUniverse(), config.DefaultSectors())
	marketService := services.NewMarketService(quoteClient, config.TopStocks())
	cryptoService := services.NewCryptoService(quoteClient, config.MajorCryptos())
	newsService := services.NewNewsService(appConfig.NewsFeedURLs)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	screenerHandler := handlers.NewScreenerHandler(screenerService)
	marketHandler := handlers.NewMarketHandler(marketService)
	cryptoHandler := handlers.NewCryptoHandler(cryptoService)
	newsHandler := handlers.NewNewsHandler(newsService)

	// Register custom binding validators
	validator.Register()

	// Optional screener cache warming
	if appConfig.ScreenerWarmCron != "" {
		warmCron := cron.New()
		_, err := warmCron.AddFunc(appConfig.ScreenerWarmCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			screenerService.WarmCache(ctx)
		})
		if err != nil {
			return fmt.Errorf("invalid SCREENER_WARM_CRON: %w", err)
		}
		warmCron.Start()
		defer warmCron.Stop()
		log.Infof("Screener cache warming scheduled: %s", appConfig.ScreenerWarmCron)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Market data routes are public, like the dashboard pages that use them
	v1.GET("/stocks", marketHandler.TopStocks)
	v1.GET("/stocks/:symbol", marketHandler.StockDetail)
	v1.GET("/stocks/:symbol/history", marketHandler.History)
	v1.GET("/indices", marketHandler.Indices)
	v1.GET("/crypto", cryptoHandler.List)
	v1.GET("/news", newsHandler.List)
	v1.GET("/screener", screenerHandler.Screen)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.List)
	portfolio.POST("", portfolioHandler.Create)
	portfolio.DELETE("/:id", portfolioHandler.Delete)
	portfolio.GET("/summary", portfolioHandler.Summary)

	log.Infof("Starting marketdash backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
