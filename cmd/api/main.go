package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/lorrc/ticket-analytics-backend/internal/adapters/primary/http"
	mw "github.com/lorrc/ticket-analytics-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/ticket-analytics-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/ticket-analytics-backend/internal/adapters/secondary/spreadsheet"
	"github.com/lorrc/ticket-analytics-backend/internal/config"
	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	"github.com/lorrc/ticket-analytics-backend/internal/core/services"
	"github.com/lorrc/ticket-analytics-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Real-time Components
	hub := websocket.NewHub(logger)
	go hub.Run()

	// 4. Initialize Rate Limiters
	var generalRateLimiter, uploadRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})

		uploadRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.UploadRPS,
			BurstSize:         cfg.RateLimit.UploadBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
	}

	// 5. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Spreadsheet decoder (Secondary Adapter)
	decoder := spreadsheet.NewDecoder()

	// Services (Core)
	dashboardService := services.NewDashboardService(
		decoder,
		domain.DefaultRoster(),
		hub,
		services.DashboardConfig{
			DateRange: domain.DateRange{
				Start: cfg.Analytics.DefaultStartDate,
				End:   cfg.Analytics.DefaultEndDate,
			},
			Salaries: domain.SalaryTable{
				Level1: cfg.Analytics.DefaultSalaryL1,
				Level2: cfg.Analytics.DefaultSalaryL2,
				Level3: cfg.Analytics.DefaultSalaryL3,
			},
			GrowthPct:      cfg.Analytics.DefaultGrowthPct,
			CapacityPerDay: cfg.Analytics.CapacityPerAnalyst,
		},
		logger,
	)

	// Handlers (Primary Adapters)
	dashboardHandler := httpAdapter.NewDashboardHandler(dashboardService, errorHandler, logger)
	uploadHandler := httpAdapter.NewUploadHandler(dashboardService, errorHandler, cfg.Upload.MaxBytes, logger)
	settingsHandler := httpAdapter.NewSettingsHandler(dashboardService, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, cfg, logger)
	healthHandler := httpAdapter.NewHealthHandler(cfg.App.Version)

	// 6. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         cfg.CORS.MaxAge,
	}))

	// Apply general rate limiting if enabled
	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Spreadsheet uploads with stricter rate limiting
		r.Group(func(r chi.Router) {
			if uploadRateLimiter != nil {
				r.Use(uploadRateLimiter.Middleware)
			}
			r.Route("/dashboard/upload", uploadHandler.RegisterRoutes)
		})

		// WebSocket refresh feed
		r.Get("/ws", wsHandler.ServeHTTP)

		r.Route("/dashboard", dashboardHandler.RegisterRoutes)
		r.Route("/settings", settingsHandler.RegisterRoutes)
	})

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
