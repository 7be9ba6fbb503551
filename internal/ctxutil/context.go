// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	senderIDKey  contextKey = "ctxutil.senderID"
	requestIDKey contextKey = "ctxutil.requestID"
)

// WithSenderID adds a sender ID (PSID) to the context.
// The sender ID comes from webhook events and is used for logging
// and for addressing outbound replies.
func WithSenderID(ctx context.Context, senderID string) context.Context {
	return context.WithValue(ctx, senderIDKey, senderID)
}

// GetSenderID retrieves the sender ID from the context.
// Returns the sender ID if found, empty string otherwise.
func GetSenderID(ctx context.Context) string {
	if v := ctx.Value(senderIDKey); v != nil {
		if senderID, ok := v.(string); ok && senderID != "" {
			return senderID
		}
	}
	return ""
}

// WithRequestID adds a request/event ID to the context for tracing.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID if found, empty string otherwise.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if requestID, ok := v.(string); ok && requestID != "" {
			return requestID
		}
	}
	return ""
}
