package venice

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/veniceai/venice-go/internal/logging"
)

// RetryConfig controls the retry-with-backoff wrapper. It is immutable
// per-call configuration; no state persists between calls.
type RetryConfig struct {
	// MaxRetries is the number of re-attempts after the first try, so the
	// total number of invocations is MaxRetries+1.
	MaxRetries int
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration
	// BackoffFactor multiplies the delay after each failed attempt.
	BackoffFactor float64
	// Jitter randomizes each delay by a uniform factor in [1.0, 1.5).
	Jitter bool
}

// DefaultRetryConfig retries 3 times, starting at 500ms and doubling up to
// 10s, with jitter.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		Jitter:        true,
	}
}

// Delay computes the backoff before retry attempt n (1-indexed):
// min(InitialDelay * BackoffFactor^(n-1), MaxDelay), optionally jittered.
// Jitter never reduces the delay below the base value.
func (c RetryConfig) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))
	d := time.Duration(base)
	if d > c.MaxDelay {
		d = c.MaxDelay
	}
	if c.Jitter {
		d = time.Duration(float64(d) * (1.0 + rand.Float64()*0.5))
	}
	return d
}

// IsRetryable reports whether an error is worth retrying: network failures
// and rate-limit errors always, API errors only for 5xx statuses. Parse and
// input errors are fatal.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}
	return false
}

// Retry invokes op until it succeeds, fails with a non-retryable error,
// or exhausts cfg.MaxRetries re-attempts, sleeping the backoff delay between
// attempts. The last error is returned. op must be safe to re-invoke; the
// wrapper does not enforce idempotence.
func Retry[T any](ctx context.Context, cfg RetryConfig, op func() (T, error)) (T, error) {
	logger := logging.FromContext(ctx)

	var zero T
	attempt := 0
	for {
		result, err := op()
		if err == nil {
			return result, nil
		}

		attempt++
		if attempt > cfg.MaxRetries || !IsRetryable(err) {
			return zero, err
		}

		delay := cfg.Delay(attempt)
		logger.Debug("request failed, retrying",
			"err", err, "delay", delay, "attempt", attempt, "max_retries", cfg.MaxRetries)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
