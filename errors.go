package venice

import (
	"encoding/json"
	"fmt"

	"github.com/veniceai/venice-go/internal/httpclient"
)

// APIError is a failure reported by the Venice API itself: a non-2xx status
// with whatever code and message could be extracted from the response body.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Code is the error code reported by the API, or "unknown".
	Code string
	// Message is the human-readable error message.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s (HTTP %d)", e.Code, e.Message, e.Status)
}

// RateLimitError indicates the rate limit was exceeded, either reported by
// the API (HTTP 429) or detected locally by a RateLimiter with auto-wait
// disabled.
type RateLimitError struct {
	Message string
	// Info is the snapshot parsed from the 429 response headers. Nil when
	// the error originated from local limiter state.
	Info *RateLimitInfo
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded: " + e.Message
}

// NetworkError wraps a connectivity-level failure: DNS, connect, TLS, or
// timeout. Always retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "http error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError indicates a 2xx response body or stream chunk that could not be
// decoded into the expected type. Never retried.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse response: %s: %v", e.Message, e.Err)
	}
	return "failed to parse response: " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidInputError indicates caller-supplied bad configuration or arguments,
// surfaced before any request is made.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Message
}

// decodeAPIError extracts a code and message from a non-2xx response body.
// Three vendor shapes are handled: {"error":{"code","message"}},
// {"error":"string"}, and anything else falls back to the raw body text.
func decodeAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var obj struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &obj); err == nil && (obj.Code != "" || obj.Message != "") {
			if obj.Code == "" {
				obj.Code = "unknown"
			}
			if obj.Message == "" {
				obj.Message = "unknown error"
			}
			return &APIError{Status: status, Code: obj.Code, Message: obj.Message}
		}

		var s string
		if err := json.Unmarshal(envelope.Error, &s); err == nil && s != "" {
			return &APIError{Status: status, Code: "api_error", Message: s}
		}
	}

	return &APIError{Status: status, Code: "unknown", Message: httpclient.SummarizeBody(body)}
}
