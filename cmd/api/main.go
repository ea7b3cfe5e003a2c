package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderscleaning/quotes-api/config"
	"github.com/alexanderscleaning/quotes-api/internal/database/postgres"
	"github.com/alexanderscleaning/quotes-api/internal/handlers"
	"github.com/alexanderscleaning/quotes-api/internal/llm"
	"github.com/alexanderscleaning/quotes-api/internal/middleware"
	"github.com/alexanderscleaning/quotes-api/internal/ratelimit"
	"github.com/alexanderscleaning/quotes-api/internal/repository"
	"github.com/alexanderscleaning/quotes-api/internal/services"
	"github.com/alexanderscleaning/quotes-api/pkg/db"
	"github.com/alexanderscleaning/quotes-api/pkg/httpclient"
	"github.com/alexanderscleaning/quotes-api/pkg/logger"
	"github.com/alexanderscleaning/quotes-api/pkg/metrics"
	"github.com/alexanderscleaning/quotes-api/pkg/profiling"
	"github.com/alexanderscleaning/quotes-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting quotes API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool. The store is optional: without
	// DATABASE_URL the quote endpoint answers 503 while the calculator
	// endpoints keep working.
	var dbClient *postgres.Client
	if cfg.Database.URL != "" {
		pool, err := db.NewPool(context.Background(), db.PoolConfig{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
		}
		defer db.Close(pool)
		dbClient = postgres.NewClient(pool)
	} else {
		logger.Warn("DATABASE_URL not configured, quote persistence disabled")
	}

	// NOTE: Database migrations are run separately via the migrate command

	// Initialize HTTP client for external API calls
	httpClient := httpclient.NewStandardClient()

	// Initialize the completion client (nil when INSIGHT_API_KEY is absent)
	llmClient := llm.NewClient(llm.Config{
		APIKey:      cfg.Insight.APIKey,
		Model:       cfg.Insight.Model,
		BaseURL:     cfg.Insight.BaseURL,
		Temperature: cfg.Insight.Temperature,
		Timeout:     cfg.Insight.Timeout,
	})

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(dbClient)

	// Initialize services
	notificationService := services.NewNotificationService(cfg, httpClient)
	quoteService := services.NewQuoteService(quoteRepo, notificationService, cfg)
	insightService := services.NewInsightService(llmClient, cfg)

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService, cfg.Server.BusinessPhone)
	insightHandler := handlers.NewInsightHandler(insightService, notificationService, cfg.Server.BusinessPhone)
	healthHandler := handlers.NewHealthHandler(quoteRepo.Available)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	// Fixed-window limiter for the quote endpoint: 5 requests per minute per
	// IP with the X-RateLimit header contract
	quoteLimiter := ratelimit.NewFixedWindowLimiter(
		cfg.RateLimit.Window,
		cfg.RateLimit.MaxRequests,
		cfg.RateLimit.SweepInterval,
	)
	quoteLimiter.Start()
	defer quoteLimiter.Stop()

	// Token-bucket limiters for the rest of the surface
	generalRateLimiter := middleware.NewRateLimiter(100, 200, cfg.Server.BusinessPhone) // 100 req/sec, burst of 200
	calculatorRateLimiter := middleware.NewRateLimiter(2, 5, cfg.Server.BusinessPhone)  // 2 req/sec, burst of 5 (one user clicking through the wizard)
	defer generalRateLimiter.Stop()
	defer calculatorRateLimiter.Stop()

	// API routes
	api := router.Group("/api")
	// Utility endpoints (not versioned - operational endpoints)
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// API v1 routes
	// SECURITY: Apply body size limits to prevent DoS attacks
	v1 := router.Group("/api/v1")
	v1.Use(middleware.OriginGuardMiddleware(allowedOrigins, cfg.Server.BusinessPhone))
	v1.POST("/quote",
		middleware.FixedWindowMiddleware(quoteLimiter, "quote", cfg.Server.BusinessPhone),
		middleware.BodySizeLimitMiddleware(100*1024),
		quoteHandler.SubmitQuote)
	v1.POST("/calculator/insights",
		calculatorRateLimiter.Middleware(),
		middleware.BodySizeLimitMiddleware(100*1024),
		insightHandler.GenerateInsights)
	v1.POST("/calculator/package",
		calculatorRateLimiter.Middleware(),
		middleware.BodySizeLimitMiddleware(100*1024),
		insightHandler.SelectPackage)

	// Create HTTP server
	// SECURITY: Bind to all interfaces for Docker Compose networking
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
