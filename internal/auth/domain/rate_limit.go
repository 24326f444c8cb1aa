package domain

import (
	"fmt"
	"time"

	apperrors "github.com/allisson/streamgate/internal/errors"
)

// RateLimitCounter tracks requests for one key within a fixed window.
type RateLimitCounter struct {
	Key           string
	Count         int
	WindowResetAt time.Time
}

// RateLimitDecision is the outcome of a rate-limit check.
type RateLimitDecision struct {
	Allowed    bool
	Count      int
	Limit      int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Remaining returns how many requests are left in the current window.
func (d *RateLimitDecision) Remaining() int {
	if d.Count >= d.Limit {
		return 0
	}
	return d.Limit - d.Count
}

// RateLimitedError is returned when an operation is refused by a rate limit.
// It matches errors.ErrTooManyRequests.
type RateLimitedError struct {
	RetryAfter time.Duration
	Limit      int
	Remaining  int
	ResetAt    time.Time
}

// NewRateLimitedError builds a RateLimitedError from a refused decision.
func NewRateLimitedError(d *RateLimitDecision) *RateLimitedError {
	return &RateLimitedError{
		RetryAfter: d.RetryAfter,
		Limit:      d.Limit,
		Remaining:  d.Remaining(),
		ResetAt:    d.ResetAt,
	}
}

// Error implements error.
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Unwrap exposes the ErrTooManyRequests sentinel.
func (e *RateLimitedError) Unwrap() error {
	return apperrors.ErrTooManyRequests
}

// RetryAfterHint exposes RetryAfter to transports that set a Retry-After header.
func (e *RateLimitedError) RetryAfterHint() time.Duration {
	return e.RetryAfter
}

// RateLimitQuota exposes the window state behind the refusal.
func (e *RateLimitedError) RateLimitQuota() (limit, remaining int, resetAt time.Time) {
	return e.Limit, e.Remaining, e.ResetAt
}
