package venice

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/veniceai/venice-go/internal/logging"
)

// RateLimitInfo is an immutable snapshot of the rate-limit state extracted
// from one HTTP response's headers. Absent or unparseable headers leave the
// corresponding field nil, never zero.
type RateLimitInfo struct {
	// LimitRequests is the total request budget for the current window.
	LimitRequests *int64
	// RemainingRequests is the number of requests left in the window.
	RemainingRequests *int64
	// ResetRequests is the Unix timestamp when the request budget resets.
	ResetRequests *int64
	// LimitTokens is the total token budget for the current window.
	LimitTokens *int64
	// RemainingTokens is the number of tokens left in the window.
	RemainingTokens *int64
	// ResetTokens is the number of seconds until the token budget resets.
	ResetTokens *int64
	// BalanceVCU is the account's VCU balance, when reported.
	BalanceVCU *float64
	// BalanceUSD is the account's USD balance, when reported.
	BalanceUSD *float64
}

// RateLimitInfoFromHeaders parses the x-ratelimit-* and balance headers from
// a response. Header lookup is case-insensitive.
func RateLimitInfoFromHeaders(h http.Header) *RateLimitInfo {
	return &RateLimitInfo{
		LimitRequests:     intHeader(h, "x-ratelimit-limit-requests"),
		RemainingRequests: intHeader(h, "x-ratelimit-remaining-requests"),
		ResetRequests:     intHeader(h, "x-ratelimit-reset-requests"),
		LimitTokens:       intHeader(h, "x-ratelimit-limit-tokens"),
		RemainingTokens:   intHeader(h, "x-ratelimit-remaining-tokens"),
		ResetTokens:       intHeader(h, "x-ratelimit-reset-tokens"),
		BalanceVCU:        floatHeader(h, "x-venice-balance-vcu"),
		BalanceUSD:        floatHeader(h, "x-venice-balance-usd"),
	}
}

func intHeader(h http.Header, name string) *int64 {
	v := h.Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func floatHeader(h http.Header, name string) *float64 {
	v := h.Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// IsRateLimited reports whether either remaining counter is exhausted.
func (i *RateLimitInfo) IsRateLimited() bool {
	if i.RemainingRequests != nil && *i.RemainingRequests == 0 {
		return true
	}
	if i.RemainingTokens != nil && *i.RemainingTokens == 0 {
		return true
	}
	return false
}

func (i *RateLimitInfo) String() string {
	val := func(p *int64) int64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return fmt.Sprintf("%d/%d requests, %d/%d tokens",
		val(i.RemainingRequests), val(i.LimitRequests),
		val(i.RemainingTokens), val(i.LimitTokens))
}

// RateLimiterConfig controls how a RateLimiter behaves on exhaustion.
type RateLimiterConfig struct {
	// AutoWait makes Acquire sleep until the earliest reset instead of
	// failing when the budget is exhausted.
	AutoWait bool
	// MaxWait caps how long an auto-wait sleep may last.
	MaxWait time.Duration
}

// DefaultRateLimiterConfig waits automatically, up to one minute.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		AutoWait: true,
		MaxWait:  time.Minute,
	}
}

// RateLimiter mirrors the vendor's rate-limit counters as reported by
// response headers and gates new calls against them. It is a backoff
// heuristic, not a strict admission gate: every field is an independently
// overwritten atomic, last writer wins, and races that let an extra request
// through before the next snapshot arrives are acceptable.
//
// A single RateLimiter is safely shared by any number of concurrent callers.
type RateLimiter struct {
	maxRequests       atomic.Int64
	remainingRequests atomic.Int64
	resetRequests     atomic.Int64 // unix seconds
	maxTokens         atomic.Int64
	remainingTokens   atomic.Int64
	resetTokens       atomic.Int64 // unix seconds

	config RateLimiterConfig
}

// NewRateLimiter creates a rate limiter with the default configuration.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimiterConfig())
}

// NewRateLimiterWithConfig creates a rate limiter with the given
// configuration. Remaining counters are seeded to 1 so the very first call
// is never blocked before any response has been observed.
func NewRateLimiterWithConfig(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{config: config}
	rl.remainingRequests.Store(1)
	rl.remainingTokens.Store(1)
	return rl
}

// UpdateFromInfo overwrites the limiter's counters with the snapshot's
// present fields; nil fields leave the corresponding counter untouched.
// ResetRequests is taken verbatim as a Unix timestamp; ResetTokens is
// seconds-until-reset and converted to an absolute deadline here.
func (rl *RateLimiter) UpdateFromInfo(info *RateLimitInfo) {
	if info == nil {
		return
	}
	if info.LimitRequests != nil {
		rl.maxRequests.Store(*info.LimitRequests)
	}
	if info.RemainingRequests != nil {
		rl.remainingRequests.Store(*info.RemainingRequests)
	}
	if info.ResetRequests != nil {
		rl.resetRequests.Store(*info.ResetRequests)
	}
	if info.LimitTokens != nil {
		rl.maxTokens.Store(*info.LimitTokens)
	}
	if info.RemainingTokens != nil {
		rl.remainingTokens.Store(*info.RemainingTokens)
	}
	if info.ResetTokens != nil {
		rl.resetTokens.Store(time.Now().Unix() + *info.ResetTokens)
	}
}

// IsRateLimited reports whether either remaining counter is exhausted.
func (rl *RateLimiter) IsRateLimited() bool {
	return rl.remainingRequests.Load() <= 0 || rl.remainingTokens.Load() <= 0
}

// Remaining returns the current remaining request and token counters.
func (rl *RateLimiter) Remaining() (requests, tokens int64) {
	return rl.remainingRequests.Load(), rl.remainingTokens.Load()
}

// TimeUntilReset returns the smaller of the two reset horizons that lies in
// the future. ok is false when both horizons are in the past or unset.
func (rl *RateLimiter) TimeUntilReset() (d time.Duration, ok bool) {
	now := time.Now().Unix()

	var earliest int64
	if r := rl.resetRequests.Load(); r > now {
		earliest = r
	}
	if t := rl.resetTokens.Load(); t > now && (earliest == 0 || t < earliest) {
		earliest = t
	}
	if earliest == 0 {
		return 0, false
	}
	return time.Duration(earliest-now) * time.Second, true
}

// Acquire grants permission to make a request. If the budget is exhausted
// and auto-wait is disabled, it fails immediately with a *RateLimitError.
// With auto-wait enabled it sleeps until the earliest reset (capped at
// MaxWait) and then returns nil without re-checking: the next response's
// headers correct the counters if the wait was insufficient. The sleep is
// cancelled by ctx.
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	if !rl.IsRateLimited() {
		return nil
	}

	if !rl.config.AutoWait {
		return &RateLimitError{Message: "budget exhausted and auto-wait is disabled"}
	}

	wait, ok := rl.TimeUntilReset()
	if !ok {
		return &RateLimitError{Message: "budget exhausted and reset time is unknown"}
	}
	if wait > rl.config.MaxWait {
		wait = rl.config.MaxWait
	}

	if wait > 0 {
		logging.FromContext(ctx).Info("rate limit exhausted, waiting for reset", "wait", wait)
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
