// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required)
	EnvAppSecret       = "MESSENGER_APP_SECRET"
	EnvValidationToken = "MESSENGER_VALIDATION_TOKEN"
	EnvPageAccessToken = "MESSENGER_PAGE_ACCESS_TOKEN"
	EnvServerURL       = "SERVER_URL"

	// Server
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	// Webhook
	EnvWebhookTimeout      = "WEBHOOK_TIMEOUT"
	EnvMaxEventsPerWebhook = "MAX_EVENTS_PER_WEBHOOK"
	EnvEventConcurrency    = "EVENT_CONCURRENCY"

	// Send API
	EnvSendAPIURL  = "SEND_API_URL"
	EnvSendTimeout = "SEND_TIMEOUT"
	EnvSendRateRPS = "SEND_RATE_RPS"

	// Metrics Auth
	EnvMetricsUsername = "METRICS_USERNAME"
	EnvMetricsPassword = "METRICS_PASSWORD"

	// Sentry
	EnvSentryDSN         = "SENTRY_DSN"
	EnvSentryEnvironment = "SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "SENTRY_SAMPLE_RATE"

	// Better Stack
	EnvBetterStackToken    = "BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "BETTERSTACK_ENDPOINT"
)
