package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/84adam/jenkins-test-app/config"
	"github.com/84adam/jenkins-test-app/handlers"
	"github.com/84adam/jenkins-test-app/logging"
	"github.com/84adam/jenkins-test-app/metrics"
	"github.com/84adam/jenkins-test-app/mockapi"
	"github.com/84adam/jenkins-test-app/monitoring"
	"github.com/84adam/jenkins-test-app/ui"
	"github.com/84adam/jenkins-test-app/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	if err := logging.InitLogging(&logging.LogConfig{
		LogDir:     cfg.Logging.Directory,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		LogLevel:   level,
	}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	appMetrics, err := metrics.New()
	if err != nil {
		logging.ErrorLogger.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Create Echo instance
	handlers.Echo = echo.New()
	handlers.Echo.HideBanner = true
	handlers.Echo.Debug = !utils.IsProductionEnvironment()

	// Middleware
	handlers.Echo.Use(middleware.Logger())
	handlers.Echo.Use(middleware.Recover())
	handlers.Echo.Use(middleware.CORS())
	handlers.Echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	routes := handlers.RouteOptions{
		Env:     utils.BuildEnvironment,
		Metrics: appMetrics,
		Health:  monitoring.NewHealthMonitor(ui.Version),
	}
	if cfg.MockAPI.Enabled {
		routes.MockAPI = mockapi.NewServer(mockapi.Handlers(mockapi.Options{
			SigningKey: []byte(cfg.MockAPI.SigningKey),
			TokenTTL:   time.Duration(cfg.MockAPI.TokenTTLHours) * time.Hour,
		})...).WithMetrics(appMetrics)
		logging.InfoLogger.Printf("Mock API enabled under /api")
	}
	handlers.RegisterRoutes(routes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.InfoLogger.Printf("Starting server on %s (build environment %q)", cfg.Address(), utils.BuildEnvironment())
		if err := handlers.Echo.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Printf("Failed to start server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := handlers.Echo.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Printf("Graceful shutdown failed: %v", err)
	}
	logging.InfoLogger.Printf("Server stopped")
}
