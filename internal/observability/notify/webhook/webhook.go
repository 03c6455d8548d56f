package webhook

// Package webhook delivers auth outage notifications to a generic JSON
// webhook so on-call tooling sees provider connectivity failures.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prefeitura-sp/coresso-portal/internal/observability/notify"
)

// Config captures the webhook sink behaviour.
type Config struct {
	URL        string
	Timeout    time.Duration
	RetryLimit int
	RetryDelay time.Duration
	Client     *http.Client
}

// Client posts auth outage notifications to a webhook endpoint.
type Client struct {
	url        string
	retryLimit int
	retryDelay time.Duration
	client     *http.Client
}

// NewClient builds a webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		url:        url,
		retryLimit: retries,
		retryDelay: delay,
		client:     hc,
	}, nil
}

type message struct {
	Event      string `json:"event"`
	Operation  string `json:"operation"`
	Error      string `json:"error"`
	Severity   string `json:"severity"`
	OccurredAt string `json:"occurred_at"`
}

// SendAuthOutage posts the payload as JSON, retrying on delivery failure
// with a pause between attempts. A canceled context stops the retries.
func (c *Client) SendAuthOutage(ctx context.Context, payload notify.AuthOutagePayload) error {
	body, err := json.Marshal(message{
		Event:      "auth_provider_outage",
		Operation:  payload.Operation,
		Error:      payload.Error,
		Severity:   payload.Severity,
		OccurredAt: payload.OccurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		if err := c.post(ctx, body); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
