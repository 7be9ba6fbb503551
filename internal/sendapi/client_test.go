package sendapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chowbot/chowbot-go/internal/errors"
	"github.com/chowbot/chowbot-go/internal/logger"
	"github.com/chowbot/chowbot-go/internal/messenger"
	"github.com/chowbot/chowbot-go/internal/metrics"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Config{
		Endpoint:    endpoint,
		AccessToken: "test-token",
		Timeout:     2 * time.Second,
		RateRPS:     100,
		Metrics:     metrics.New(prometheus.NewRegistry()),
		Logger:      logger.New("error"),
	})
}

func TestSend_Success(t *testing.T) {
	var gotToken string
	var gotBody messenger.SendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("access_token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messenger.SendResponse{
			RecipientID: "user_1",
			MessageID:   "mid.abc",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.Send(context.Background(), messenger.NewTextMessage("user_1", "hello"))
	require.NoError(t, err)

	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "user_1", gotBody.Recipient.ID)
	require.NotNil(t, gotBody.Message)
	assert.Equal(t, "hello", gotBody.Message.Text)
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(messenger.ErrorResponse{
			Error: messenger.ErrorDetail{
				Message: "Invalid OAuth access token.",
				Type:    "OAuthException",
				Code:    190,
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.Send(context.Background(), messenger.NewTextMessage("user_1", "hello"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSendFailed)

	var sendErr *apperrors.SendError
	require.True(t, errors.As(err, &sendErr))
	assert.Equal(t, http.StatusBadRequest, sendErr.StatusCode)
	assert.Equal(t, 190, sendErr.Code)
}

func TestSend_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.Send(context.Background(), messenger.NewTextMessage("user_1", "hello"))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "a failed send must not be retried")
}

func TestSend_TransportError(t *testing.T) {
	// Closed server makes the connection refuse immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(srv.URL)
	err := c.Send(context.Background(), messenger.NewTextMessage("user_1", "hello"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSendFailed)
}

func TestSend_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Send(ctx, messenger.NewTextMessage("user_1", "hello"))
	require.Error(t, err)
}
