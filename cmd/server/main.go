package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	cartapp "github.com/roastline/storefront/internal/application/cart"
	catalogapp "github.com/roastline/storefront/internal/application/catalog"
	identityapp "github.com/roastline/storefront/internal/application/identity"
	orderapp "github.com/roastline/storefront/internal/application/order"
	pricingapp "github.com/roastline/storefront/internal/application/pricing"
	"github.com/roastline/storefront/internal/domain/cart"
	"github.com/roastline/storefront/internal/domain/integration"
	"github.com/roastline/storefront/internal/infrastructure/auth"
	"github.com/roastline/storefront/internal/infrastructure/cartstore"
	"github.com/roastline/storefront/internal/infrastructure/config"
	"github.com/roastline/storefront/internal/infrastructure/erp"
	"github.com/roastline/storefront/internal/infrastructure/event"
	"github.com/roastline/storefront/internal/infrastructure/logger"
	"github.com/roastline/storefront/internal/infrastructure/persistence"
	"github.com/roastline/storefront/internal/interfaces/http/handler"
	"github.com/roastline/storefront/internal/interfaces/http/middleware"
	"github.com/roastline/storefront/internal/interfaces/http/router"
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
		_ = log.Sync()
	}()

	log.Info("Starting Roastline storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with GORM logging routed through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Redis holds cart snapshots; the storefront can run without it only
	// in tests, so a dead Redis is fatal here
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	ruleRepo := persistence.NewGormRuleRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)

	var cartStore cart.Store = cartstore.NewRedisStore(redisClient, cfg.Cart.TTL, log)

	// ERP gateway: Moysklad when credentials are configured, otherwise a
	// stub that accepts every order (local development)
	var erpGateway integration.ErpGateway
	if cfg.Erp.Login != "" {
		msConfig := erp.NewMoyskladConfig(cfg.Erp.Login, cfg.Erp.Password, cfg.Erp.Organization)
		if cfg.Erp.BaseURL != "" {
			msConfig.BaseURL = cfg.Erp.BaseURL
		}
		if cfg.Erp.Timeout > 0 {
			msConfig.Timeout = cfg.Erp.Timeout
		}
		if cfg.Erp.MaxRetries > 0 {
			msConfig.MaxRetries = cfg.Erp.MaxRetries
		}
		adapter, err := erp.NewMoyskladAdapter(msConfig, log)
		if err != nil {
			log.Fatal("Failed to configure Moysklad gateway", zap.Error(err))
		}
		erpGateway = adapter
		log.Info("Moysklad gateway configured", zap.String("organization", cfg.Erp.Organization))
	} else {
		erpGateway = erp.NewStubGateway(log)
		log.Warn("ERP credentials missing, orders go to the stub gateway")
	}

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	stockRefreshHandler := orderapp.NewStockRefreshHandler(orderRepo, erpGateway, log)
	eventBus.Subscribe(stockRefreshHandler, stockRefreshHandler.EventTypes()...)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	codeProvider := auth.NewStubCodeProvider(cfg.Auth, log)

	quoteService := pricingapp.NewQuoteService(ruleRepo)
	catalogService := catalogapp.NewCatalogService(productRepo)
	cartService := cartapp.NewCartService(cartStore, productRepo, ruleRepo, eventBus, log)
	authService := identityapp.NewAuthService(customerRepo, codeProvider, jwtService, log)
	checkoutService := orderapp.NewCheckoutService(cartStore, orderRepo, productRepo, ruleRepo, erpGateway, eventBus, log)

	// HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	pricingHandler := handler.NewPricingHandler(quoteService)
	cartHandler := handler.NewCartHandler(cartService)
	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(checkoutService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-Cart-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Locale and cart session ride on every request
	engine.Use(middleware.Locale())
	engine.Use(middleware.CartID())

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, redisClient))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog: public product cards
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/products", catalogHandler.List)
	catalogRoutes.GET("/products/:slug", catalogHandler.GetBySlug)

	// Pricing: live quotes and the discount ladder
	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.POST("/quote", pricingHandler.Quote)
	pricingRoutes.GET("/tiers/:sku", pricingHandler.TierTable)

	// Cart: anonymous session keyed by X-Cart-ID
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.DELETE("", cartHandler.Clear)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:sku", cartHandler.SetQuantity)
	cartRoutes.DELETE("/items/:sku", cartHandler.RemoveItem)

	// Auth: phone code login, no session required
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/code", authHandler.RequestCode)
	authRoutes.POST("/verify", authHandler.VerifyCode)

	// Orders: checkout works for guests, a session links the order
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.Use(middleware.OptionalSession(jwtService))
	orderRoutes.POST("/checkout", orderHandler.Checkout)
	orderRoutes.GET("/:number", orderHandler.Get)
	orderRoutes.POST("/:number/retry", orderHandler.Retry)

	// Account: profile and order history behind a session
	accountRoutes := router.NewDomainGroup("account", "/account")
	accountRoutes.Use(middleware.RequireSession(jwtService))
	accountRoutes.GET("/profile", authHandler.Profile)
	accountRoutes.PUT("/profile", authHandler.UpdateProfile)
	accountRoutes.GET("/orders", orderHandler.ListMine)

	r.Register(catalogRoutes).
		Register(pricingRoutes).
		Register(cartRoutes).
		Register(authRoutes).
		Register(orderRoutes).
		Register(accountRoutes)

	r.Setup()

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

// healthHandler reports database and Redis connectivity
func healthHandler(db *persistence.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbState := "ok"
		redisState := "ok"

		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			dbState = "error"
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			status = http.StatusServiceUnavailable
			redisState = "error"
		}

		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbState,
			"redis":    redisState,
		}
		if status != http.StatusOK {
			body["status"] = "unhealthy"
		}
		c.JSON(status, body)
	}
}
