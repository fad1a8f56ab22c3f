package main

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"simple-directions/internal/config"
	"simple-directions/internal/metrics"
	"simple-directions/internal/overlay"
	"simple-directions/internal/timezone"

	_ "simple-directions/docs" // Ensure docs are imported
)

// App encapsulates application dependencies
type App struct {
	router         *gin.Engine
	logger         *slog.Logger
	overlayService overlay.Service
	metrics        *metrics.Collector
	timezones      timezone.Service
	cfg            *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics collector: %w", err)
	}

	// Time zones are optional; routes are still served without them
	timezones, err := timezone.NewService()
	if err != nil {
		logger.Warn("timezone lookup disabled", "error", err)
	}

	return newApp(cfg, logger, overlay.NewService(cfg, logger, collector), collector, timezones), nil
}

func newApp(cfg *config.Config, logger *slog.Logger, svc overlay.Service, collector *metrics.Collector, timezones timezone.Service) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	app := &App{
		router:         router,
		logger:         logger,
		overlayService: svc,
		metrics:        collector,
		timezones:      timezones,
		cfg:            cfg,
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized")
	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
