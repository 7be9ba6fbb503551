// Package config provides centralized timeout constants for the application.
//
// These values are tuned around Messenger platform constraints:
//   - Webhook callbacks must be acknowledged within ~20 seconds or the
//     platform marks the delivery as failed and may redeliver the batch.
//   - The acknowledgment is sent before event processing starts, so the
//     processing timeout bounds background work, not the HTTP response.
//   - Send API calls occasionally stall; a per-request timeout keeps one
//     slow send from starving the rest of a batch.
package config

import "time"

// Webhook timeouts
const (
	// WebhookProcessing is the timeout for processing one callback batch in
	// the background. The HTTP 200 is already committed by the time this
	// clock starts, so it exists to bound stragglers, not the ack.
	WebhookProcessing = 15 * time.Second

	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	// Callbacks are small JSON payloads; reads should be fast.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	// Responses are tiny (challenge echo or empty 200).
	WebhookHTTPWrite = 10 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// Send API timeouts
const (
	// SendRequest is the timeout for a single send API call.
	SendRequest = 10 * time.Second
)
