// Package httpclient provides a retrying HTTP client for calls to
// external services such as the transactional email API.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"time"
)

// Config controls client timeouts and retry behaviour.
type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	MaxConnsPerHost int
}

// DefaultConfig returns sensible defaults for outbound calls.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryWaitMin:    time.Second,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	}
}

// Client wraps http.Client with bounded retries for transient failures.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// New creates a client from the given config.
func New(cfg Config) *Client {
	transport := &http.Transport{
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		MaxIdleConnsPerHost: cfg.MaxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		cfg: cfg,
	}
}

// Get issues a GET request with retries.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.Do(req)
}

// Post issues a POST request with retries. The body is buffered so it can
// be replayed on each attempt.
func (c *Client) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	var buf []byte
	if body != nil {
		var err error
		buf, err = io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if buf != nil {
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
	}
	return c.Do(req)
}

// Do executes the request, retrying transient network errors and retryable
// 5xx responses up to MaxRetries additional attempts. 4xx responses and 501
// are returned immediately.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff(attempt)
			select {
			case <-req.Context().Done():
				return nil, fmt.Errorf("request cancelled during retry: %w", req.Context().Err())
			case <-time.After(wait):
			}
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("rewind request body: %w", err)
				}
				req.Body = body
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if !isRetryableError(err) {
				return nil, err
			}
			continue
		}

		if isRetryableStatus(resp.StatusCode) && attempt < c.cfg.MaxRetries {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("received status %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.cfg.MaxRetries+1, lastErr)
}

// backoff computes the wait for the given attempt (1-indexed), doubling from
// RetryWaitMin up to RetryWaitMax, with jitter.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.cfg.RetryWaitMin << (attempt - 1)
	if wait > c.cfg.RetryWaitMax || wait <= 0 {
		wait = c.cfg.RetryWaitMax
	}
	return addJitter(wait)
}

// addJitter applies ±25% jitter to the duration.
func addJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	jitter := time.Duration(float64(d) * 0.25 * (2*rand.Float64() - 1)) // #nosec G404 -- non-cryptographic jitter
	return d + jitter
}

// isRetryableStatus reports whether the status code warrants a retry.
// 501 Not Implemented will not change on retry.
func isRetryableStatus(code int) bool {
	return code >= 500 && code != http.StatusNotImplemented
}

// isRetryableError reports whether a transport error is worth retrying.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout() || !errors.Is(err, context.Canceled)
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
