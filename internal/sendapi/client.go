// Package sendapi is the gateway to the remote send endpoint. It serializes
// outbound messages, POSTs them with the page access credential, and
// interprets the response. Failures are terminal: logged and counted, never
// retried, never surfaced to the inbound webhook response.
package sendapi

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "github.com/chowbot/chowbot-go/internal/errors"
	"github.com/chowbot/chowbot-go/internal/logger"
	"github.com/chowbot/chowbot-go/internal/messenger"
	"github.com/chowbot/chowbot-go/internal/metrics"
	"github.com/chowbot/chowbot-go/internal/ratelimit"
)

// Client posts outbound messages to the send API.
type Client struct {
	rc          *resty.Client
	endpoint    string
	accessToken string
	limiter     *ratelimit.Limiter
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

// Config holds the inputs for creating a Client.
type Config struct {
	Endpoint    string        // Send API URL
	AccessToken string        // Page access token, sent as a query parameter
	Timeout     time.Duration // Per-request timeout
	RateRPS     float64       // Global send pacing
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
}

// NewClient creates a send API client.
func NewClient(cfg Config) *Client {
	rc := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0) // sends are fire-and-forget, never retried

	return &Client{
		rc:          rc,
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		limiter:     ratelimit.New(cfg.RateRPS, cfg.RateRPS),
		metrics:     cfg.Metrics,
		logger:      cfg.Logger.WithModule("sendapi"),
	}
}

// Send delivers one outbound message. The returned error is for the caller's
// log only; by the time a send runs the webhook's own HTTP response has
// already been committed.
func (c *Client) Send(ctx context.Context, req messenger.SendRequest) error {
	msgType := req.MessageType()

	if !c.limiter.Allow() {
		c.metrics.RecordRateLimiterWait("send")
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.RecordSend(msgType, "error", 0)
			return apperrors.NewSendError(0, 0, "", err)
		}
	}

	start := time.Now()
	var success messenger.SendResponse
	var apiErr messenger.ErrorResponse

	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("access_token", c.accessToken).
		SetBody(req).
		SetResult(&success).
		SetError(&apiErr).
		Post(c.endpoint)

	duration := time.Since(start).Seconds()

	if err != nil {
		c.metrics.RecordSend(msgType, "error", duration)
		c.logger.WithError(err).WithField("message_type", msgType).Error("Send API transport error")
		return apperrors.NewSendError(0, 0, "", err)
	}

	if resp.IsError() {
		sendErr := apperrors.NewSendError(resp.StatusCode(), apiErr.Error.Code, apiErr.Error.Message, nil)
		c.metrics.RecordSend(msgType, "error", duration)
		c.logger.WithField("status", resp.StatusCode()).
			WithField("error_code", apiErr.Error.Code).
			WithField("error_message", apiErr.Error.Message).
			WithField("message_type", msgType).
			Error("Send API rejected message")
		return sendErr
	}

	c.metrics.RecordSend(msgType, "success", duration)
	if success.MessageID != "" {
		c.logger.WithField("recipient_id", success.RecipientID).
			WithField("message_id", success.MessageID).
			WithField("message_type", msgType).
			Debug("Message sent")
	} else {
		c.logger.WithField("message_type", msgType).Debug("Send API call succeeded")
	}
	return nil
}
