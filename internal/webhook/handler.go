// Package webhook provides the inbound webhook HTTP surface: subscription
// verification, signature checking over the raw body, and asynchronous
// dispatch of messaging events to the responder and send gateway.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/chowbot/chowbot-go/internal/bot"
	"github.com/chowbot/chowbot-go/internal/ctxutil"
	apperrors "github.com/chowbot/chowbot-go/internal/errors"
	"github.com/chowbot/chowbot-go/internal/logger"
	"github.com/chowbot/chowbot-go/internal/messenger"
	"github.com/chowbot/chowbot-go/internal/metrics"
	"github.com/chowbot/chowbot-go/internal/sendapi"
	"github.com/chowbot/chowbot-go/internal/sentry"
	"github.com/chowbot/chowbot-go/internal/signature"
)

// maxBodyBytes caps the webhook request body. Callbacks are small JSON;
// anything near this size is abuse.
const maxBodyBytes = 1 << 20

// Handler handles webhook verification and event callbacks.
type Handler struct {
	verifier        *signature.Verifier
	responder       *bot.Responder
	sender          *sendapi.Client
	metrics         *metrics.Metrics
	logger          *logger.Logger
	validationToken string

	maxEventsPerWebhook int
	eventConcurrency    int
	processTimeout      time.Duration

	wg sync.WaitGroup // tracks async batch processing
}

// HandlerConfig holds configuration for creating a new Handler.
type HandlerConfig struct {
	AppSecret           string
	ValidationToken     string
	Responder           *bot.Responder
	Sender              *sendapi.Client
	Metrics             *metrics.Metrics
	Logger              *logger.Logger
	MaxEventsPerWebhook int
	EventConcurrency    int
	ProcessTimeout      time.Duration
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		verifier:            signature.NewVerifier(cfg.AppSecret),
		responder:           cfg.Responder,
		sender:              cfg.Sender,
		metrics:             cfg.Metrics,
		logger:              cfg.Logger.WithModule("webhook"),
		validationToken:     cfg.ValidationToken,
		maxEventsPerWebhook: cfg.MaxEventsPerWebhook,
		eventConcurrency:    cfg.EventConcurrency,
		processTimeout:      cfg.ProcessTimeout,
	}
}

// HandleVerify is the Gin handler for the subscription handshake (GET).
// Responds with the literal challenge iff mode is "subscribe" and the token
// matches configuration; 403 otherwise.
func (h *Handler) HandleVerify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.validationToken {
		h.logger.Info("Webhook subscription verified")
		c.String(http.StatusOK, challenge)
		return
	}

	h.logger.WithField("mode", mode).Warn("Webhook verification failed")
	c.Status(http.StatusForbidden)
}

// HandleCallback is the Gin handler for event callbacks (POST).
//
// The signature is verified against the exact raw bytes received, before any
// JSON decoding. Both a missing and a mismatched signature fail closed with
// 403. Once the callback is accepted the 200 is committed immediately and
// events are processed in the background; the platform's ack deadline must
// never wait on outbound sends.
func (h *Handler) HandleCallback(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.logger.WithError(err).Warn("Failed to read webhook body")
		h.metrics.RecordWebhook("malformed")
		c.Status(http.StatusBadRequest)
		return
	}

	header := c.GetHeader("X-Hub-Signature-256")
	if header == "" {
		header = c.GetHeader("X-Hub-Signature")
	}

	if err := h.verifier.Verify(body, header); err != nil {
		reason := "mismatch"
		if errors.Is(err, apperrors.ErrSignatureMissing) {
			reason = "missing"
		}
		h.metrics.RecordSignatureFailure(reason)
		h.metrics.RecordWebhook("bad_signature")
		h.logger.WithError(err).WithField("reason", reason).Warn("Rejected webhook callback")
		c.Status(http.StatusForbidden)
		return
	}

	var cb messenger.Callback
	if err := json.Unmarshal(body, &cb); err != nil {
		h.logger.WithError(err).Warn("Failed to decode webhook callback")
		h.metrics.RecordWebhook("malformed")
		c.Status(http.StatusBadRequest)
		return
	}

	if cb.Object != "page" {
		h.logger.WithField("object", cb.Object).Debug("Callback for unsupported object")
		h.metrics.RecordWebhook("bad_object")
		c.Status(http.StatusNotFound)
		return
	}

	// Commit the ack before any event work (platform contract: 200 regardless
	// of downstream outcome).
	c.Status(http.StatusOK)
	h.metrics.RecordWebhook("accepted")

	// Flatten entries into array order.
	var events []messenger.Messaging
	for _, entry := range cb.Entry {
		events = append(events, entry.Messaging...)
	}

	if len(events) > h.maxEventsPerWebhook {
		h.logger.WithField("event_count", len(events)).
			WithField("limit", h.maxEventsPerWebhook).
			Warn("Too many events in webhook batch; truncating")
		events = events[:h.maxEventsPerWebhook]
	}

	if len(events) == 0 {
		return
	}

	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithField("panic", r).Error("Panic in async event processing")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), h.processTimeout)
		defer cancel()

		// Events within a batch share no mutable state (the catalog is
		// read-only), so they can be processed concurrently. Each event's own
		// replies still go out in order.
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(h.eventConcurrency)
		for _, m := range events {
			g.Go(func() error {
				h.processEvent(gctx, m)
				return nil
			})
		}
		_ = g.Wait()
	})
}

// processEvent classifies one messaging event, asks the responder for
// replies, and ships them through the send gateway in order.
func (h *Handler) processEvent(ctx context.Context, m messenger.Messaging) {
	start := time.Now()
	ev := messenger.Classify(m)

	ctx = ctxutil.WithSenderID(ctx, ev.SenderID)
	log := h.logger.WithField("event_type", ev.Kind.String()).
		WithField("sender_id", ev.SenderID)

	if ev.Kind == messenger.EventUnknown {
		log.WithField("timestamp_ms", ev.Timestamp).Warn("Unknown event shape")
		h.metrics.RecordEvent(ev.Kind.String(), "ignored", time.Since(start).Seconds())
		return
	}

	replies := h.responder.Respond(ev)
	if len(replies) == 0 {
		h.metrics.RecordEvent(ev.Kind.String(), "ignored", time.Since(start).Seconds())
		return
	}

	status := "success"
	for _, req := range replies {
		if err := h.sender.Send(ctx, req); err != nil {
			// Terminal and local: logged by the gateway, no retry, and the
			// webhook's HTTP response is long gone.
			status = "error"
			if sentry.IsEnabled() {
				sentry.CaptureExceptionWithContext(ctx, err)
			}
		}
	}

	duration := time.Since(start)
	h.metrics.RecordEvent(ev.Kind.String(), status, duration.Seconds())
	log.WithField("reply_count", len(replies)).
		WithField("duration_ms", duration.Milliseconds()).
		Info("Event processed")
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	c := make(chan struct{})
	go func() {
		defer close(c)
		h.wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
