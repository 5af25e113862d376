package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	procapp "github.com/stockflow/backend/internal/application/procurement"
	projectapp "github.com/stockflow/backend/internal/application/project"
	stockapp "github.com/stockflow/backend/internal/application/stock"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/cache"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/infrastructure/logger"
	"github.com/stockflow/backend/internal/infrastructure/persistence"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
	"github.com/stockflow/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting StockFlow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	purchaseEntryRepo := persistence.NewGormPurchaseEntryRepository(db.DB)
	stockLotRepo := persistence.NewGormStockLotRepository(db.DB)
	issueRepo := persistence.NewGormIssueRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	txScope := persistence.NewGormStockTransactionScope(db.DB)

	// Idempotency store for the issue commit path
	var idempotencyStore shared.IdempotencyStore
	switch cfg.Idempotency.Backend {
	case "redis":
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = store
		log.Info("Using Redis idempotency store",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	default:
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize application services
	purchaseEntryService := procapp.NewPurchaseEntryService(txScope, purchaseEntryRepo, log)
	ledgerService := stockapp.NewLedgerService(purchaseEntryRepo, issueRepo)
	issueService := stockapp.NewIssueService(txScope, issueRepo, stockLotRepo, log)
	issueService.SetIdempotencyStore(idempotencyStore, cfg.Idempotency.TTL)
	openingStockService := stockapp.NewOpeningStockService(stockLotRepo, log)
	projectService := projectapp.NewProjectService(projectRepo, log)

	// Initialize HTTP handlers
	purchaseEntryHandler := handler.NewPurchaseEntryHandler(purchaseEntryService)
	inventoryHandler := handler.NewInventoryHandler(ledgerService)
	issueHandler := handler.NewIssueHandler(issueService)
	openingStockHandler := handler.NewOpeningStockHandler(openingStockService)
	projectHandler := handler.NewProjectHandler(projectService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request IDs, panic recovery, request
	// logging, security headers, CORS, body limit, then auth.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning, never authenticated)
	engine.GET("/health", healthHandler(db))

	// Register domain route groups
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	if cfg.Auth.Enabled {
		verifier := auth.NewTokenVerifier(cfg.Auth)
		bearerAuth := middleware.BearerAuth(verifier)

		authed := func(routes *router.DomainGroup) *router.DomainGroup {
			return routes.Use(bearerAuth)
		}
		r.Register(authed(procurementRoutes(purchaseEntryHandler))).
			Register(authed(stockRoutes(inventoryHandler, issueHandler, openingStockHandler))).
			Register(authed(projectRoutes(projectHandler)))
		log.Info("Bearer token verification enabled", zap.String("issuer", cfg.Auth.Issuer))
	} else {
		r.Register(procurementRoutes(purchaseEntryHandler)).
			Register(stockRoutes(inventoryHandler, issueHandler, openingStockHandler)).
			Register(projectRoutes(projectHandler))
	}

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

// procurementRoutes wires the purchase entry endpoints
func procurementRoutes(entryHandler *handler.PurchaseEntryHandler) *router.DomainGroup {
	routes := router.NewDomainGroup("procurement", "/procurement")
	routes.GET("/purchase-entries", entryHandler.List)
	routes.POST("/purchase-entries", entryHandler.Create)
	routes.GET("/purchase-entries/part/:partNumber", entryHandler.GetByPartNumber)
	routes.GET("/purchase-entries/:id", entryHandler.GetByID)
	routes.PUT("/purchase-entries/:id", entryHandler.Update)
	routes.DELETE("/purchase-entries/:id", entryHandler.Delete)
	return routes
}

// stockRoutes wires the ledger, issuance and opening stock endpoints
func stockRoutes(
	inventoryHandler *handler.InventoryHandler,
	issueHandler *handler.IssueHandler,
	openingStockHandler *handler.OpeningStockHandler,
) *router.DomainGroup {
	routes := router.NewDomainGroup("stock", "/stock")
	routes.GET("/inventory", inventoryHandler.GetLedger)
	routes.GET("/issues", issueHandler.List)
	routes.POST("/issues", issueHandler.Create)
	routes.GET("/issues/available/:partNumber", issueHandler.GetAvailable)
	routes.GET("/opening-stock", openingStockHandler.List)
	routes.POST("/opening-stock", openingStockHandler.Create)
	return routes
}

// projectRoutes wires the destination project endpoints
func projectRoutes(projectHandler *handler.ProjectHandler) *router.DomainGroup {
	routes := router.NewDomainGroup("project", "/projects")
	routes.GET("", projectHandler.List)
	routes.POST("", projectHandler.Create)
	return routes
}

// healthHandler reports liveness of the service and its database
func healthHandler(db *persistence.Database) gin.HandlerFunc {
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
