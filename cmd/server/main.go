// Package main provides the ChowBot webhook server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/chowbot/chowbot-go/internal/bot"
	"github.com/chowbot/chowbot-go/internal/buildinfo"
	"github.com/chowbot/chowbot-go/internal/config"
	"github.com/chowbot/chowbot-go/internal/logger"
	"github.com/chowbot/chowbot-go/internal/metrics"
	"github.com/chowbot/chowbot-go/internal/sendapi"
	"github.com/chowbot/chowbot-go/internal/sentry"
	"github.com/chowbot/chowbot-go/internal/webhook"
)

func main() {
	// Load configuration; the process refuses to start without the shared
	// secret, validation token, access token and public base URL.
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.WithField("version", buildinfo.Version).
		WithField("commit", buildinfo.Commit).
		Info("Starting ChowBot server")
	if cfg.BetterStackToken != "" {
		log.Info("Better Stack logging enabled")
	}

	// Initialize Sentry (no-op without a DSN)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
	}

	// Create Prometheus registry with runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Create the send gateway
	sender := sendapi.NewClient(sendapi.Config{
		Endpoint:    cfg.SendAPIURL,
		AccessToken: cfg.PageAccessToken,
		Timeout:     cfg.SendTimeout,
		RateRPS:     cfg.SendRateRPS,
		Metrics:     m,
		Logger:      log,
	})

	// Create the responder; asset links are always built from the configured
	// public base URL.
	responder := bot.NewResponder(cfg.AssetURL, log)

	// Create webhook handler
	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		AppSecret:           cfg.AppSecret,
		ValidationToken:     cfg.ValidationToken,
		Responder:           responder,
		Sender:              sender,
		Metrics:             m,
		Logger:              log,
		MaxEventsPerWebhook: cfg.MaxEventsPerWebhook,
		EventConcurrency:    cfg.EventConcurrency,
		ProcessTimeout:      cfg.WebhookTimeout,
	})
	log.Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, cfg, webhookHandler, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.WebhookHTTPRead,
		WriteTimeout: config.WebhookHTTPWrite,
		IdleTimeout:  config.WebhookHTTPIdle,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig.String()).Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Stop accepting new callbacks first
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Wait for in-flight webhook batches to finish sending
	if err := webhookHandler.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Timeout waiting for event processing to finish")
	}

	if sentry.IsEnabled() && !sentry.Flush(2*time.Second) {
		log.Warn("Timed out flushing Sentry events")
	}

	log.Info("Server stopped")
}
