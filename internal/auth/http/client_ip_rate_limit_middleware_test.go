package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func setupRateLimitedRouter(ctx context.Context, rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(ClientIPRateLimitMiddleware(ctx, rps, burst, discardLogger()))
	router.POST("/v1/otp/issue", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"issued": true})
	})
	return router
}

func postFrom(router http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/issue", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClientIPRateLimitMiddleware_AllowsBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := setupRateLimitedRouter(ctx, 1.0, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postFrom(router, "").Code, "request %d", i+1)
	}

	w := postFrom(router, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestClientIPRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := setupRateLimitedRouter(ctx, 1.0, 1)

	assert.Equal(t, http.StatusOK, postFrom(router, "192.168.1.100:12345").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "192.168.1.100:12346").Code)
	assert.Equal(t, http.StatusOK, postFrom(router, "192.168.1.101:12345").Code)
}

func TestClientIPLimiterStore_RemoveIdle(t *testing.T) {
	store := &clientIPLimiterStore{rps: 10, burst: 20}
	now := time.Now()

	store.getLimiter("10.0.0.1", now.Add(-2*time.Hour))
	store.getLimiter("10.0.0.2", now)

	assert.Equal(t, 1, store.removeIdle(now.Add(-time.Hour)))

	_, ok := store.limiters.Load("10.0.0.1")
	assert.False(t, ok)
	_, ok = store.limiters.Load("10.0.0.2")
	assert.True(t, ok)
}

func TestClientIPLimiterStore_ReusesLimiter(t *testing.T) {
	store := &clientIPLimiterStore{rps: 10, burst: 20}
	first := store.getLimiter("10.0.0.1", time.Now())
	second := store.getLimiter("10.0.0.1", time.Now())
	assert.Same(t, first, second)
}

func TestClientIPRateLimitMiddleware_CleanupStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	_ = ClientIPRateLimitMiddleware(ctx, 1.0, 1, discardLogger())
	cancel()
}
