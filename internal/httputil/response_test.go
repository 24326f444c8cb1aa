package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/streamgate/internal/errors"
)

type limitedErr struct {
	retryAfter time.Duration
}

func (e *limitedErr) Error() string                 { return "limited" }
func (e *limitedErr) Unwrap() error                 { return apperrors.ErrTooManyRequests }
func (e *limitedErr) RetryAfterHint() time.Duration { return e.retryAfter }

type quotaErr struct {
	limitedErr
	limit, remaining int
	resetAt          time.Time
}

func (e *quotaErr) RateLimitQuota() (int, int, time.Time) { return e.limit, e.remaining, e.resetAt }

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"NotFound", apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"Conflict", apperrors.Wrap(apperrors.ErrConflict, "video not ready"), http.StatusConflict, "conflict"},
		{"InvalidInput", apperrors.Wrap(apperrors.ErrInvalidInput, "bad id"), http.StatusBadRequest, "invalid_input"},
		{"Unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"Forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"Internal", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, decode(t, w).Error)
		})
	}

	t.Run("InternalHidesDetails", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, errors.New("disk on fire"), nil)
		assert.NotContains(t, w.Body.String(), "disk on fire")
	})

	t.Run("NilErrorWritesNothing", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, nil)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleErrorGin_TooManyRequests(t *testing.T) {
	t.Run("WithRetryHint", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, fmt.Errorf("issue: %w", &limitedErr{retryAfter: 2500 * time.Millisecond}), nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "3", w.Header().Get("Retry-After"))
		response := decode(t, w)
		assert.Equal(t, "rate_limit_exceeded", response.Error)
		assert.Equal(t, int64(2500), response.RetryAfterMs)
	})

	t.Run("WithoutRetryHint", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, apperrors.ErrTooManyRequests, nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("WithQuota", func(t *testing.T) {
		resetAt := time.Unix(1735689900, 0)
		c, w := newTestContext()
		HandleErrorGin(c, fmt.Errorf("issue: %w", &quotaErr{
			limitedErr: limitedErr{retryAfter: 4 * time.Minute},
			limit:      1,
			remaining:  0,
			resetAt:    resetAt,
		}), nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "240", w.Header().Get("Retry-After"))
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "1735689900", w.Header().Get("X-RateLimit-Reset"))
	})
}

func TestWriteRateLimitedGin(t *testing.T) {
	t.Run("WholeSeconds", func(t *testing.T) {
		c, w := newTestContext()
		WriteRateLimitedGin(c, RateLimitInfo{RetryAfter: 300 * time.Second}, nil)

		assert.Equal(t, "300", w.Header().Get("Retry-After"))
		assert.Equal(t, int64(300000), decode(t, w).RetryAfterMs)
		assert.Empty(t, w.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("ResetDerivedFromRetryAfter", func(t *testing.T) {
		before := time.Now()
		c, w := newTestContext()
		WriteRateLimitedGin(c, RateLimitInfo{RetryAfter: 90 * time.Second, Limit: 3, Remaining: -1}, nil)

		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		reset, err := strconv.ParseInt(w.Header().Get("X-RateLimit-Reset"), 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, reset, before.Add(90*time.Second).Unix())
		assert.LessOrEqual(t, reset, time.Now().Add(91*time.Second).Unix())
	})
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleValidationErrorGin(c, errors.New("email: must be a valid email address"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	assert.Equal(t, "invalid_input", response.Error)
	assert.Contains(t, response.Message, "email")
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()
	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", decode(t, w).Error)
}
