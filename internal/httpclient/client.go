// Package httpclient wraps net/http with the small surface the SDK needs:
// request options, full-body JSON round trips, and stream-opening requests
// whose bodies stay open for the caller to consume.
package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is applied when no explicit timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client wraps an http.Client with convenience methods for JSON APIs.
type Client struct {
	http *http.Client
}

// Response holds the status code, headers, and fully-read body of a
// completed HTTP request. The underlying http.Response body is already
// closed; callers read from Body instead.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// New creates a Client with the default timeout.
func New() *Client {
	return NewWithTimeout(DefaultTimeout)
}

// NewWithTimeout creates a Client with the given timeout. Non-positive
// values fall back to the default.
func NewWithTimeout(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// NewFromHTTPClient creates a Client over a caller-supplied http.Client,
// for callers that need custom transports or TLS configuration.
func NewFromHTTPClient(hc *http.Client) *Client {
	if hc == nil {
		return New()
	}
	return &Client{http: hc}
}

// RequestOption configures an http.Request before it is sent.
type RequestOption func(*http.Request)

// DoCtx sends an HTTP request with the given context, method and URL,
// applies options, reads the full body, and returns a Response. A non-nil
// error indicates a network-level failure (DNS, connect, TLS, timeout) or
// context cancellation; HTTP error status codes are returned in
// Response.StatusCode.
func (c *Client) DoCtx(ctx context.Context, method, rawURL string, body io.Reader, opts ...RequestOption) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

// DoStream sends an HTTP request and returns the raw http.Response without
// reading the body. The caller owns the body and must close it; dropping it
// releases the connection.
func (c *Client) DoStream(ctx context.Context, method, rawURL string, body io.Reader, opts ...RequestOption) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(req)
	}
	return c.http.Do(req)
}
