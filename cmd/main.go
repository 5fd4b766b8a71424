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

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-push-dispatch/internal/config"
	"github.com/KasumiMercury/primind-push-dispatch/internal/handler"
	"github.com/KasumiMercury/primind-push-dispatch/internal/health"
	"github.com/KasumiMercury/primind-push-dispatch/internal/infra/fcm"
	"github.com/KasumiMercury/primind-push-dispatch/internal/infra/googleauth"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/logging"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/metrics"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/middleware"
	"github.com/KasumiMercury/primind-push-dispatch/internal/service/dispatch"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	credential, err := googleauth.ParseCredential([]byte(cfg.ServiceAccountJSON))
	if err != nil {
		slog.Error("failed to parse service account credential", slog.String("error", err.Error()))
		return 1
	}

	slog.Info("service account credential loaded",
		slog.String("client_email", credential.ClientEmail),
		slog.String("project_id", credential.ProjectID),
	)

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	dispatchMetrics, err := metrics.NewDispatchMetrics()
	if err != nil {
		slog.Error("failed to initialize dispatch metrics", slog.String("error", err.Error()))
		return 1
	}

	// Initialize dependencies
	exchanger := googleauth.NewExchanger(cfg.OAuth.TokenURL, cfg.FCM.OutboundTimeout)
	tokenSource := googleauth.NewCachedTokenSource(
		credential,
		cfg.OAuth.TokenURL,
		exchanger,
		cfg.OAuth.TokenCacheLeeway,
		dispatchMetrics,
	)
	fcmClient := fcm.NewClient(cfg.FCM.Endpoint, credential.ProjectID, cfg.FCM.OutboundTimeout)

	dispatchService := dispatch.NewService(tokenSource, fcmClient, dispatchMetrics)
	pushHandler := handler.NewPushHandler(dispatchService)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      logging.Module("push-dispatch"),
		TracerName:  "github.com/KasumiMercury/primind-push-dispatch/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoints
	healthChecker := health.NewChecker(credential, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes; the bare POST / mirrors the function-style deployment URL
	r.POST("/", pushHandler.HandlePush)
	v1 := r.Group("/api/v1")
	{
		v1.POST("/push", pushHandler.HandlePush)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("fcm_endpoint", cfg.FCM.Endpoint),
			slog.String("token_url", cfg.OAuth.TokenURL),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
