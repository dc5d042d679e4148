package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

const defaultRetryAfter = 5 * time.Second

// TooManyRequestsError represents a rate limiting signal from the receiver.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Sender delivers marketplace events to an external collaborator.
type Sender interface {
	Send(ctx context.Context, event model.Event) error
}

// HTTPClient posts events as JSON to a webhook endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates webhook client with default timeout.
func NewHTTPClient(endpoint string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	return &HTTPClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts a single event. Any 2xx response counts as delivered.
func (c *HTTPClient) Send(ctx context.Context, event model.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", event.ID)
	req.Header.Set("X-Event-Type", string(event.Type))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("webhook request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("event_id", event.ID),
			slog.String("body", string(respBody)),
		)
		return fmt.Errorf("webhook error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return defaultRetryAfter
}

// LogSender writes events to the log. It is used when no webhook is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, event model.Event) error {
	s.logger.Info("event",
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.Int64("subject", event.Subject),
		slog.Int64("actor_id", event.ActorID),
	)
	return nil
}
