package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mangaalertitalia/web/models"
)

const (
	userAgent        = "mangaalert-web"
	maxResponseSize  = 1 << 20
	tokenPlaceholder = "{token}"
)

type Endpoints struct {
	Subscribe           string
	UnsubscribeTemplate string // must contain {token}
}

type Recorder interface {
	ObserveServiceCall(operation string, code int, elapsed time.Duration)
}

// NotificationClient talks to the external notification service. It is safe for
// concurrent use.
type NotificationClient struct {
	logger    *slog.Logger
	client    *http.Client
	endpoints Endpoints
	recorder  Recorder
}

func NewNotificationClient(logger *slog.Logger, client *http.Client, endpoints Endpoints, recorder Recorder) *NotificationClient {
	return &NotificationClient{
		logger:    logger,
		client:    client,
		endpoints: endpoints,
		recorder:  recorder,
	}
}

// Subscribe creates a subscription and returns the service's confirmation message.
func (c *NotificationClient) Subscribe(ctx context.Context, email string, titles []string) (string, error) {
	payload, err := json.Marshal(models.SubscribeRequest{
		Email:         email,
		Subscriptions: titles,
	})
	if err != nil {
		return "", errors.Wrap(err, "subscribe: encode request")
	}

	return c.do(ctx, "subscribe", http.MethodPost, c.endpoints.Subscribe, payload)
}

// Unsubscribe deletes the subscription identified by token.
func (c *NotificationClient) Unsubscribe(ctx context.Context, token string) (string, error) {
	return c.do(ctx, "unsubscribe", http.MethodDelete, c.UnsubscribeURL(token), nil)
}

func (c *NotificationClient) UnsubscribeURL(token string) string {
	return strings.ReplaceAll(c.endpoints.UnsubscribeTemplate, tokenPlaceholder, url.PathEscape(token))
}

func (c *NotificationClient) do(ctx context.Context, operation, method, target string, payload []byte) (string, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return "", errors.Wrapf(err, "%s: build request", operation)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With("operation", operation, "request_id", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(operation, 0, elapsed)
		logger.Warn("notification service unreachable", "elapsed_ms", elapsed.Milliseconds(), "error", err)
		return "", &TransportError{Err: errors.Wrap(err, operation)}
	}
	defer resp.Body.Close()
	c.observe(operation, resp.StatusCode, elapsed)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: errors.Wrapf(err, "%s: read response", operation)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if message := ParseServiceError(raw); message != "" {
			logger.Info("notification service rejected request", "code", resp.StatusCode, "error", message)
			return "", &ServiceError{StatusCode: resp.StatusCode, Message: message}
		}
		logger.Warn("notification service failed without message", "code", resp.StatusCode)
		return "", &TransportError{StatusCode: resp.StatusCode, Err: errors.Errorf("%s: unexpected status", operation)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		logger.Debug("notification service call done", "code", resp.StatusCode, "elapsed_ms", elapsed.Milliseconds())
		return "", nil
	}

	var res models.MessageResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		logger.Warn("notification service sent malformed response", "code", resp.StatusCode, "error", err)
		return "", &TransportError{StatusCode: resp.StatusCode, Err: errors.Wrapf(err, "%s: decode response", operation)}
	}

	logger.Debug("notification service call done", "code", resp.StatusCode, "elapsed_ms", elapsed.Milliseconds())
	return res.Message, nil
}

func (c *NotificationClient) observe(operation string, code int, elapsed time.Duration) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveServiceCall(operation, code, elapsed)
}
