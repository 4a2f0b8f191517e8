// Package httpx is the shared HTTP transport behind the platform service
// backends. It owns tenant header propagation and retry behavior so the
// individual clients stay thin.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hupe1980/agentgrid/logging"
)

// TenantHeader carries the tenant identifier on every platform request.
const TenantHeader = "X-Tenant-Id"

// defaultRateLimitDelay is used when a 429 response carries no usable
// Retry-After header and no retry_after_seconds body field.
const defaultRateLimitDelay = 60 * time.Second

// APIError is a non-2xx platform response that was not retried to success.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform API error (status %d): %s", e.StatusCode, e.Body)
}

// Client is a small JSON-over-HTTP client for the platform services. Rate
// limit (429) and server (5xx) responses are retried up to maxRetries times;
// other client errors surface immediately as *APIError.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	maxRetries int
	logger     logging.Logger
}

// Option configures a Client.
type Option func(c *Client)

// WithAuthToken sets a bearer token attached to every request.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = token }
}

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxRetries bounds retries of rate-limited and server-error responses.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 3,
		logger:     logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rateLimitBody is the JSON shape a 429 response may carry.
type rateLimitBody struct {
	RetryAfterSeconds int `json:"retry_after_seconds"`
}

// DoJSON performs one platform call. reqBody is marshaled when non-nil and
// respBody is unmarshaled into when non-nil. The tenant id is always sent in
// the X-Tenant-Id header, never in the body.
func (c *Client) DoJSON(ctx context.Context, method, path, tenantID string, reqBody, respBody any) error {
	var payload []byte
	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(TenantHeader, tenantID)
		if c.authToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.authToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			if ctx.Err() != nil {
				return lastErr
			}
			if err := c.sleep(ctx, backoffDelay(attempt)); err != nil {
				return lastErr
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if respBody == nil || len(body) == 0 {
				return nil
			}
			if err := json.Unmarshal(body, respBody); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			delay := rateLimitDelay(resp.Header, body)
			c.logger.Warn("platform rate limited", "method", method, "path", path, "delay", delay.String(), "attempt", attempt+1)
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: string(body)}
			if err := c.sleep(ctx, delay); err != nil {
				return lastErr
			}

		case resp.StatusCode >= 500:
			c.logger.Warn("platform server error", "method", method, "path", path, "status", resp.StatusCode, "attempt", attempt+1)
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: string(body)}
			if err := c.sleep(ctx, backoffDelay(attempt)); err != nil {
				return lastErr
			}

		default:
			return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		}
	}
	return lastErr
}

// rateLimitDelay resolves the wait for a 429 response. Precedence: the
// Retry-After header in seconds, then the retry_after_seconds body field,
// then the fixed default.
func rateLimitDelay(header http.Header, body []byte) time.Duration {
	if v := header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	var rl rateLimitBody
	if err := json.Unmarshal(body, &rl); err == nil && rl.RetryAfterSeconds > 0 {
		return time.Duration(rl.RetryAfterSeconds) * time.Second
	}
	return defaultRateLimitDelay
}

// backoffDelay is the exponential delay before retrying attempt+1.
func backoffDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
