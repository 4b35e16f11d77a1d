package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/sourcematch/backend/internal/application/catalog"
	partnerapp "github.com/sourcematch/backend/internal/application/partner"
	sourcingapp "github.com/sourcematch/backend/internal/application/sourcing"
	"github.com/sourcematch/backend/internal/infrastructure/config"
	"github.com/sourcematch/backend/internal/infrastructure/logger"
	"github.com/sourcematch/backend/internal/infrastructure/persistence"
	"github.com/sourcematch/backend/internal/interfaces/http/handler"
	"github.com/sourcematch/backend/internal/interfaces/http/middleware"
	"github.com/sourcematch/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SourceMatch Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	supplierProductRepo := persistence.NewGormSupplierProductRepository(db.DB)
	rejectedPairRepo := persistence.NewGormRejectedPairRepository(db.DB)

	// Initialize application services
	matchingCfg := sourcingapp.MatchingConfig{
		MinSimilarity:        cfg.Matching.MinSimilarity,
		MaxSuggestions:       cfg.Matching.MaxSuggestions,
		AutoConfirmThreshold: cfg.Matching.AutoConfirmThreshold,
		Workers:              cfg.Matching.Workers,
	}

	productService := catalogapp.NewProductService(productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	supplierProductService := sourcingapp.NewSupplierProductService(supplierProductRepo, productRepo, supplierRepo)
	matchingService := sourcingapp.NewMatchingService(supplierProductRepo, productRepo, rejectedPairRepo, supplierRepo, matchingCfg)
	confirmationService := sourcingapp.NewConfirmationService(supplierProductRepo, productRepo, rejectedPairRepo, log)
	autoConfirmService := sourcingapp.NewAutoConfirmService(supplierProductRepo, productRepo, rejectedPairRepo, supplierRepo, matchingCfg, log)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	supplierProductHandler := handler.NewSupplierProductHandler(supplierProductService)
	matchingHandler := handler.NewMatchingHandler(matchingService, confirmationService, autoConfirmService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (local products)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.PUT("/products/:id/localized-name", productHandler.UpdateLocalizedName)
	catalogRoutes.POST("/products/:id/activate", productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)

	// Partner domain (suppliers)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/suppliers", supplierHandler.Create)
	partnerRoutes.GET("/suppliers", supplierHandler.List)
	partnerRoutes.GET("/suppliers/:id", supplierHandler.GetByID)
	partnerRoutes.PUT("/suppliers/:id", supplierHandler.Update)
	partnerRoutes.POST("/suppliers/:id/activate", supplierHandler.Activate)
	partnerRoutes.POST("/suppliers/:id/deactivate", supplierHandler.Deactivate)

	// Sourcing domain (supplier listings and the matching workflow)
	sourcingRoutes := router.NewDomainGroup("sourcing", "/sourcing")
	sourcingRoutes.POST("/supplier-products", supplierProductHandler.Create)
	sourcingRoutes.GET("/supplier-products/:id", supplierProductHandler.GetByID)
	sourcingRoutes.PUT("/supplier-products/:id", supplierProductHandler.Update)
	sourcingRoutes.POST("/supplier-products/:id/reassign", supplierProductHandler.ReassignSupplier)
	// Per-product matching operations
	sourcingRoutes.GET("/supplier-products/:id/suggestions", matchingHandler.Suggest)
	sourcingRoutes.POST("/supplier-products/:id/confirm", matchingHandler.Confirm)
	sourcingRoutes.POST("/supplier-products/:id/reject", matchingHandler.Reject)
	sourcingRoutes.POST("/supplier-products/:id/unmatch", matchingHandler.Unmatch)
	// Per-supplier matching operations
	sourcingRoutes.GET("/suppliers/:id/supplier-products", supplierProductHandler.ListBySupplier)
	sourcingRoutes.GET("/suppliers/:id/suggestions", matchingHandler.ListWithSuggestions)
	sourcingRoutes.POST("/suppliers/:id/auto-confirm", matchingHandler.BulkAutoConfirm)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(partnerRoutes).
		Register(sourcingRoutes)

	// Register system routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
