// Package main provides the ChowBot webhook server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chowbot/chowbot-go/internal/buildinfo"
	"github.com/chowbot/chowbot-go/internal/config"
	"github.com/chowbot/chowbot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, cfg *config.Config, webhookHandler *webhook.Handler, registry *prometheus.Registry) {
	// Root endpoint - redirect to the project page
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/chowbot/chowbot-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only checks that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe. The bot holds no stateful dependencies (the catalog is
	// compiled in), so readiness reports configuration facts only.
	readyHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"version": buildinfo.Version,
			"send_api": gin.H{
				"endpoint": cfg.SendAPIURL,
			},
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Messenger webhook endpoints
	router.GET("/webhook", webhookHandler.HandleVerify)
	router.POST("/webhook", webhookHandler.HandleCallback)

	// Prometheus metrics endpoint, optionally behind Basic Auth
	metricsAuth := metricsAuthMiddleware(cfg.MetricsPassword != "", cfg.MetricsUsername, cfg.MetricsPassword)
	router.GET("/metrics", metricsAuth, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
