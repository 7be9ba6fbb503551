// Package metrics provides Prometheus instrumentation for the webhook
// pipeline and the send gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec
	WebhookEventsTotal     *prometheus.CounterVec

	// Signature metrics
	SignatureFailuresTotal *prometheus.CounterVec

	// Send gateway metrics
	SendRequestsTotal   *prometheus.CounterVec
	SendDurationSeconds prometheus.Histogram

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chowbot_webhook_requests_total",
				Help: "Total number of webhook callbacks by outcome",
			},
			[]string{"outcome"}, // outcome: accepted, bad_signature, bad_object, malformed
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chowbot_webhook_event_duration_seconds",
				Help:    "Event processing duration in seconds by event type",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"event_type"}, // event_type: optin, message, postback, unknown
		),

		WebhookEventsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chowbot_webhook_events_total",
				Help: "Total number of messaging events by event type and status",
			},
			[]string{"event_type", "status"}, // status: success, error, ignored
		),

		SignatureFailuresTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chowbot_signature_failures_total",
				Help: "Total number of rejected webhook callbacks by reason",
			},
			[]string{"reason"}, // reason: missing, mismatch, malformed
		),

		SendRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chowbot_send_requests_total",
				Help: "Total number of send API calls by message type and status",
			},
			[]string{"message_type", "status"}, // status: success, error
		),

		SendDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chowbot_send_duration_seconds",
				Help:    "Send API call duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chowbot_rate_limiter_waits_total",
				Help: "Total number of sends that had to wait on the pacing limiter",
			},
			[]string{"limiter"},
		),
	}
}

// RecordWebhook records a webhook callback outcome.
func (m *Metrics) RecordWebhook(outcome string) {
	m.WebhookRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordEvent records one processed messaging event.
func (m *Metrics) RecordEvent(eventType, status string, durationSeconds float64) {
	m.WebhookEventsTotal.WithLabelValues(eventType, status).Inc()
	if durationSeconds > 0 {
		m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(durationSeconds)
	}
}

// RecordSignatureFailure records a rejected callback by reason.
func (m *Metrics) RecordSignatureFailure(reason string) {
	m.SignatureFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordSend records one send API call.
func (m *Metrics) RecordSend(messageType, status string, durationSeconds float64) {
	m.SendRequestsTotal.WithLabelValues(messageType, status).Inc()
	m.SendDurationSeconds.Observe(durationSeconds)
}

// RecordRateLimiterWait records a send that waited on the pacing limiter.
func (m *Metrics) RecordRateLimiterWait(limiter string) {
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}
