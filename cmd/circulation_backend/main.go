package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/library_circulation/internal/core/services"
	"github.com/SscSPs/library_circulation/internal/handlers"
	"github.com/SscSPs/library_circulation/internal/middleware"
	"github.com/SscSPs/library_circulation/internal/platform/config"
	"github.com/SscSPs/library_circulation/internal/platform/metrics"
	"github.com/SscSPs/library_circulation/internal/repositories"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Library Circulation API
// @version 1.0
// @description Lending, returns and overdue fines for a library catalog.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	clock := func() time.Time { return time.Now().UTC() }

	repos, closeRepos, err := repositories.Open(context.Background(), cfg, clock, logger)
	if err != nil {
		logger.Error("Failed to open loan storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()
	logger.Info("Loan storage ready", slog.String("driver", cfg.StorageDriver))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	lendingMetrics, err := metrics.NewLendingMetrics(registry)
	if err != nil {
		logger.Error("Failed to register metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer, err := services.NewServiceContainer(cfg, repos, lendingMetrics)
	if err != nil {
		logger.Error("Failed to initialize services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if !cfg.IsProduction {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.RequestIDHeader)
		corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Remaining"}
		r.Use(cors.New(corsConfig))
	}

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterMetrics(r, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	handlers.RegisterRoutes(r, cfg, serviceContainer, clock, middleware.RateLimit(rateLimiter))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
