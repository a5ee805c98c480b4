package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaalertitalia/web/models"
)

type recordedCall struct {
	operation string
	code      int
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *fakeRecorder) ObserveServiceCall(operation string, code int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{operation, code})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*NotificationClient, *fakeRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	recorder := &fakeRecorder{}
	client := NewNotificationClient(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		srv.Client(),
		Endpoints{
			Subscribe:           srv.URL + "/subscribe",
			UnsubscribeTemplate: srv.URL + "/unsubscribe/{token}",
		},
		recorder,
	)
	return client, recorder
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func TestSubscribe_SendsRequest(t *testing.T) {
	var got models.SubscribeRequest
	var method, path, contentType, requestID string
	client, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Subscription successful"})
	})

	msg, err := client.Subscribe(context.Background(), "reader@example.com", []string{"Chainsaw Man", "Solo Leveling"})

	require.NoError(t, err)
	assert.Equal(t, "Subscription successful", msg)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/subscribe", path)
	assert.Equal(t, "application/json", contentType)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, "reader@example.com", got.Email)
	assert.Equal(t, []string{"Chainsaw Man", "Solo Leveling"}, got.Subscriptions)
	assert.Equal(t, []recordedCall{{"subscribe", 200}}, recorder.calls)
}

func TestSubscribe_ServiceError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad email"})
	})

	_, err := client.Subscribe(context.Background(), "reader@example.com", []string{"Chainsaw Man"})

	var serviceErr *ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, http.StatusBadRequest, serviceErr.StatusCode)
	assert.Equal(t, "bad email", serviceErr.Message)
}

func TestSubscribe_ErrorWithoutMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.Subscribe(context.Background(), "reader@example.com", []string{"Chainsaw Man"})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
}

func TestSubscribe_MalformedSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := client.Subscribe(context.Background(), "reader@example.com", []string{"Chainsaw Man"})

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestSubscribe_EmptySuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	msg, err := client.Subscribe(context.Background(), "reader@example.com", []string{"Chainsaw Man"})

	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestSubscribe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	recorder := &fakeRecorder{}
	client := NewNotificationClient(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&http.Client{Timeout: time.Second},
		Endpoints{Subscribe: srv.URL + "/subscribe", UnsubscribeTemplate: srv.URL + "/unsubscribe/{token}"},
		recorder,
	)

	_, err := client.Subscribe(context.Background(), "reader@example.com", []string{"Chainsaw Man"})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
	assert.Equal(t, []recordedCall{{"subscribe", 0}}, recorder.calls)
}

func TestUnsubscribe_SendsDelete(t *testing.T) {
	var method, path string
	var bodyLen int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		b, _ := io.ReadAll(r.Body)
		bodyLen = len(b)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed"})
	})

	msg, err := client.Unsubscribe(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "Unsubscribed", msg)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/unsubscribe/abc123", path)
	assert.Zero(t, bodyLen)
}

func TestUnsubscribe_ServiceError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Invalid token"})
	})

	_, err := client.Unsubscribe(context.Background(), "expired")

	var serviceErr *ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, "Invalid token", serviceErr.Message)
}

func TestUnsubscribeURL_EscapesPathSeparators(t *testing.T) {
	client := NewNotificationClient(slog.Default(), http.DefaultClient, Endpoints{
		UnsubscribeTemplate: "https://api.example.com/unsubscribe/{token}",
	}, nil)

	assert.Equal(t, "https://api.example.com/unsubscribe/abc123", client.UnsubscribeURL("abc123"))
	assert.Equal(t, "https://api.example.com/unsubscribe/a%2Fb", client.UnsubscribeURL("a/b"))
}

func TestSubscribe_HonoursContext(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Subscribe(ctx, "reader@example.com", []string{"Chainsaw Man"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseServiceError(t *testing.T) {
	assert.Equal(t, "bad email", ParseServiceError([]byte(`{"error":"bad email"}`)))
	assert.Equal(t, "", ParseServiceError([]byte(`{"error":42}`)))
	assert.Equal(t, "", ParseServiceError([]byte(`{"error":{"message":"nested"}}`)))
	assert.Equal(t, "", ParseServiceError([]byte(`{"message":"ok"}`)))
	assert.Equal(t, "", ParseServiceError([]byte(`["error"]`)))
	assert.Equal(t, "", ParseServiceError([]byte(`not json`)))
	assert.Equal(t, "", ParseServiceError(nil))
}
