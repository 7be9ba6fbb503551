// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, timeouts, and send API settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Messenger Platform Configuration
	AppSecret       string // Shared secret for webhook signature verification
	ValidationToken string // Token echoed during webhook subscription handshake
	PageAccessToken string // Credential for the send API
	ServerURL       string // Public base URL used to build asset links
	SendAPIURL      string // Send API endpoint

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Webhook Configuration
	WebhookTimeout      time.Duration // Budget for processing one callback batch
	MaxEventsPerWebhook int           // Batch size cap to prevent abuse
	EventConcurrency    int           // Concurrent events processed per batch

	// Send API Configuration
	SendTimeout time.Duration // Per-request timeout for outbound sends
	SendRateRPS float64       // Global pacing for outbound sends

	// Error Tracking
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Log Shipping
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		AppSecret:       getEnv(EnvAppSecret, ""),
		ValidationToken: getEnv(EnvValidationToken, ""),
		PageAccessToken: getEnv(EnvPageAccessToken, ""),
		ServerURL:       strings.TrimRight(getEnv(EnvServerURL, ""), "/"),
		SendAPIURL:      getEnv(EnvSendAPIURL, "https://graph.facebook.com/v2.6/me/messages"),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		// The platform expects the webhook ack within ~20 seconds; batch
		// processing happens after the ack so this only bounds stragglers.
		WebhookTimeout:      getDurationEnv(EnvWebhookTimeout, WebhookProcessing),
		MaxEventsPerWebhook: getIntEnv(EnvMaxEventsPerWebhook, 100),
		EventConcurrency:    getIntEnv(EnvEventConcurrency, 4),

		SendTimeout: getDurationEnv(EnvSendTimeout, SendRequest),
		SendRateRPS: getFloatEnv(EnvSendRateRPS, 25.0),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.AppSecret == "" {
		errs = append(errs, errors.New(EnvAppSecret+" is required"))
	}
	if c.ValidationToken == "" {
		errs = append(errs, errors.New(EnvValidationToken+" is required"))
	}
	if c.PageAccessToken == "" {
		errs = append(errs, errors.New(EnvPageAccessToken+" is required"))
	}
	if c.ServerURL == "" {
		errs = append(errs, errors.New(EnvServerURL+" is required"))
	} else if u, err := url.Parse(c.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", EnvServerURL, c.ServerURL))
	}
	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.WebhookTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvWebhookTimeout, c.WebhookTimeout))
	}
	if c.MaxEventsPerWebhook <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxEventsPerWebhook, c.MaxEventsPerWebhook))
	}
	if c.EventConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvEventConcurrency, c.EventConcurrency))
	}
	if c.SendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSendTimeout, c.SendTimeout))
	}
	if c.SendRateRPS <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSendRateRPS, c.SendRateRPS))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// AssetURL joins the configured public base URL with a relative asset path.
// All template image links are formed through here so the base URL stays
// injected configuration rather than a scattered literal.
func (c *Config) AssetURL(relPath string) string {
	return c.ServerURL + "/" + strings.TrimLeft(relPath, "/")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
