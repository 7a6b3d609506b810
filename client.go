package venice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/veniceai/venice-go/internal/httpclient"
	"github.com/veniceai/venice-go/internal/logging"
)

// Client is the entry point for the Venice.ai API. Its configuration is
// immutable after New returns and the client is safe for concurrent use; a
// configured RateLimiter is shared across all calls made through it.
type Client struct {
	baseURL string
	apiKey  string
	headers map[string]string
	timeout time.Duration

	http       *httpclient.Client
	streamHTTP *httpclient.Client

	retry   *RetryConfig
	limiter *RateLimiter
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithTimeout sets the per-request timeout for non-streaming calls.
// Streaming calls are bounded by their context instead, so long-lived
// streams are not cut off mid-read.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithHTTPClient supplies a custom http.Client, used for both regular and
// streaming requests. Its Timeout applies as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = httpclient.NewFromHTTPClient(hc)
		c.streamHTTP = c.http
	}
}

// WithHeader adds a custom header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithRetry enables retry-with-backoff using the given configuration.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = &cfg }
}

// WithRetries enables retry-with-backoff using DefaultRetryConfig.
func WithRetries() Option {
	return WithRetry(DefaultRetryConfig())
}

// WithRateLimiter attaches a rate limiter, which may be shared with other
// clients.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

// WithRateLimiting attaches a fresh rate limiter with the default
// configuration.
func WithRateLimiting() Option {
	return func(c *Client) { c.limiter = NewRateLimiter() }
}

// WithRateLimitingConfig attaches a fresh rate limiter with the given
// configuration.
func WithRateLimitingConfig(cfg RateLimiterConfig) Option {
	return func(c *Client) { c.limiter = NewRateLimiterWithConfig(cfg) }
}

// WithLogger sets the logger injected into request contexts. Without it,
// logging falls back to whatever logger the caller's context carries.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &InvalidInputError{Message: "API key must not be empty"}
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = httpclient.NewWithTimeout(c.timeout)
		// No http-level timeout on the streaming client: it would cover
		// the entire body read and sever long streams. Contexts bound it.
		c.streamHTTP = httpclient.NewFromHTTPClient(&http.Client{})
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// RateLimiter returns the attached rate limiter, or nil.
func (c *Client) RateLimiter() *RateLimiter { return c.limiter }

func (c *Client) requestOptions() []httpclient.RequestOption {
	opts := []httpclient.RequestOption{
		httpclient.WithBearer(c.apiKey),
		httpclient.WithHeader("Accept", "application/json"),
	}
	for k, v := range c.headers {
		opts = append(opts, httpclient.WithHeader(k, v))
	}
	return opts
}

// requestContext injects the client's logger so the limiter and retry
// wrapper log through it unless the caller already supplied one.
func (c *Client) requestContext(ctx context.Context) context.Context {
	if c.logger != nil {
		return logging.WithLogger(ctx, c.logger)
	}
	return ctx
}

func (c *Client) acquire(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Acquire(ctx)
}

func (c *Client) updateLimiter(info *RateLimitInfo) {
	if c.limiter != nil {
		c.limiter.UpdateFromInfo(info)
	}
}

// roundTrip performs one HTTP exchange: builds the URL, sends the request,
// feeds the header snapshot into the limiter, classifies the status, and
// decodes the body into out. The snapshot is returned even alongside an
// error so error paths keep the limiter current.
func (c *Client) roundTrip(ctx context.Context, method, endpoint string, query url.Values, body any, out any) (*RateLimitInfo, error) {
	u, err := joinURL(c.baseURL, endpoint)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	opts := c.requestOptions()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &InvalidInputError{Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		reader = bytes.NewReader(encoded)
		opts = append(opts, httpclient.WithHeader("Content-Type", "application/json"))
	}

	resp, err := c.http.DoCtx(ctx, method, u, reader, opts...)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	info := RateLimitInfoFromHeaders(resp.Header)
	c.updateLimiter(info)

	if err := checkStatus(resp, info); err != nil {
		return info, err
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return info, &ParseError{Message: "failed to decode response body", Err: err}
		}
	}
	return info, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, query url.Values, body any, out any) (*RateLimitInfo, error) {
	ctx = c.requestContext(ctx)
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}

	op := func() (*RateLimitInfo, error) {
		return c.roundTrip(ctx, method, endpoint, query, body, out)
	}
	if c.retry != nil {
		return Retry(ctx, *c.retry, op)
	}
	return op()
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) (*RateLimitInfo, error) {
	return c.doJSON(ctx, http.MethodGet, endpoint, query, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body any, out any) (*RateLimitInfo, error) {
	return c.doJSON(ctx, http.MethodPost, endpoint, nil, body, out)
}

func (c *Client) del(ctx context.Context, endpoint string, out any) (*RateLimitInfo, error) {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil, out)
}

// postMultipartBinary sends a multipart form and returns the raw response
// bytes with the Content-Type header surfaced verbatim as the MIME type.
// Multipart requests are never retried: the form is consumed by the send.
func (c *Client) postMultipartBinary(ctx context.Context, endpoint string, form *httpclient.Form) ([]byte, string, *RateLimitInfo, error) {
	ctx = c.requestContext(ctx)
	if err := c.acquire(ctx); err != nil {
		return nil, "", nil, err
	}

	u, err := joinURL(c.baseURL, endpoint)
	if err != nil {
		return nil, "", nil, err
	}

	body, contentType, err := form.Encode()
	if err != nil {
		return nil, "", nil, &InvalidInputError{Message: fmt.Sprintf("failed to encode multipart form: %v", err)}
	}

	opts := append(c.requestOptions(), httpclient.WithHeader("Content-Type", contentType))
	resp, err := c.http.DoCtx(ctx, http.MethodPost, u, body, opts...)
	if err != nil {
		return nil, "", nil, &NetworkError{Err: err}
	}

	info := RateLimitInfoFromHeaders(resp.Header)
	c.updateLimiter(info)

	if err := checkStatus(resp, info); err != nil {
		return nil, "", info, err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return resp.Body, mimeType, info, nil
}

// postStream sends a JSON POST and returns the response with its body still
// open for SSE consumption. Non-2xx responses are drained, classified, and
// closed here.
func (c *Client) postStream(ctx context.Context, endpoint string, body any) (*http.Response, *RateLimitInfo, error) {
	ctx = c.requestContext(ctx)
	if err := c.acquire(ctx); err != nil {
		return nil, nil, err
	}

	u, err := joinURL(c.baseURL, endpoint)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, nil, &InvalidInputError{Message: fmt.Sprintf("failed to encode request body: %v", err)}
	}

	opts := append(c.requestOptions(), httpclient.WithHeader("Content-Type", "application/json"))

	var info *RateLimitInfo
	op := func() (*http.Response, error) {
		resp, err := c.streamHTTP.DoStream(ctx, http.MethodPost, u, bytes.NewReader(encoded), opts...)
		if err != nil {
			return nil, &NetworkError{Err: err}
		}

		info = RateLimitInfoFromHeaders(resp.Header)
		c.updateLimiter(info)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
			resp.Body.Close()
			if resp.StatusCode == 429 {
				return nil, &RateLimitError{Message: info.String(), Info: info}
			}
			return nil, decodeAPIError(resp.StatusCode, errBody)
		}
		return resp, nil
	}

	var resp *http.Response
	if c.retry != nil {
		resp, err = Retry(ctx, *c.retry, op)
	} else {
		resp, err = op()
	}
	if err != nil {
		return nil, info, err
	}
	return resp, info, nil
}
