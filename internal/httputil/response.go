// Package httputil maps domain errors to JSON error responses for gin handlers.
package httputil

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/streamgate/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error        string `json:"error"`
	Message      string `json:"message,omitempty"`
	RetryAfterMs int64  `json:"retry_after_ms,omitempty"`
}

// retryHinter is implemented by errors that know when the caller may retry.
type retryHinter interface {
	RetryAfterHint() time.Duration
}

// quotaReporter is implemented by errors that carry the state of the refusing window.
type quotaReporter interface {
	RateLimitQuota() (limit, remaining int, resetAt time.Time)
}

// RateLimitInfo describes a throttled request. A zero Limit omits the
// X-RateLimit-* headers; a zero ResetAt is derived from RetryAfter.
type RateLimitInfo struct {
	RetryAfter time.Duration
	Limit      int
	Remaining  int
	ResetAt    time.Time
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// Unknown errors become 500 without exposing details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		var info RateLimitInfo
		var hinter retryHinter
		if apperrors.As(err, &hinter) {
			info.RetryAfter = hinter.RetryAfterHint()
		}
		var reporter quotaReporter
		if apperrors.As(err, &reporter) {
			info.Limit, info.Remaining, info.ResetAt = reporter.RateLimitQuota()
		}
		WriteRateLimitedGin(c, info, logger)
		return

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// WriteRateLimitedGin writes a 429 response with a Retry-After header in whole seconds
// (rounded up) and the precise delay in milliseconds. When info.Limit is set it also
// writes X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset (unix seconds).
func WriteRateLimitedGin(c *gin.Context, info RateLimitInfo, logger *slog.Logger) {
	retryAfter := info.RetryAfter
	if retryAfter < 0 {
		retryAfter = 0
	}

	seconds := int64((retryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	if logger != nil {
		logger.Debug("rate limit exceeded",
			slog.String("path", c.FullPath()),
			slog.Int64("retry_after_ms", retryAfter.Milliseconds()),
		)
	}

	if info.Limit > 0 {
		resetAt := info.ResetAt
		if resetAt.IsZero() {
			resetAt = time.Now().Add(time.Duration(seconds) * time.Second)
		}
		remaining := info.Remaining
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
	}

	c.Header("Retry-After", strconv.FormatInt(seconds, 10))
	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:        "rate_limit_exceeded",
		Message:      "Too many requests. Please retry after the specified delay.",
		RetryAfterMs: retryAfter.Milliseconds(),
	})
}

// HandleBadRequestGin writes a 400 response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_input",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 400 response for requests failing validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_input",
		Message: err.Error(),
	})
}
