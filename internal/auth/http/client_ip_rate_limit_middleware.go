package http

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/streamgate/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// clientIPLimiterStore holds one token bucket per client IP.
type clientIPLimiterStore struct {
	limiters sync.Map // map[string]*clientIPLimiterEntry
	rps      float64
	burst    int
}

type clientIPLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// ClientIPRateLimitMiddleware throttles unauthenticated endpoints per client IP with a
// token bucket.
//
// c.ClientIP() honours X-Forwarded-For and X-Real-IP from trusted proxies.
// The stale-entry cleanup goroutine stops when ctx is cancelled.
func ClientIPRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &clientIPLimiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, limiterCleanupInterval, limiterIdleTimeout)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP, time.Now())

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := reservation.Delay()
			reservation.Cancel()

			logger.Debug("client ip rate limit exceeded", slog.String("client_ip", clientIP))

			httputil.WriteRateLimitedGin(c, httputil.RateLimitInfo{
				RetryAfter: retryAfter,
				Limit:      store.burst,
				Remaining:  0,
				ResetAt:    time.Now().Add(retryAfter),
			}, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (s *clientIPLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	if val, ok := s.limiters.Load(ip); ok {
		entry := val.(*clientIPLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &clientIPLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, _ := s.limiters.LoadOrStore(ip, entry)
	return actual.(*clientIPLimiterEntry).limiter
}

// removeIdle deletes limiters not used since threshold and returns how many were removed.
func (s *clientIPLimiterStore) removeIdle(threshold time.Time) int {
	removed := 0
	s.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*clientIPLimiterEntry)
		entry.mu.Lock()
		idle := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if idle {
			s.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (s *clientIPLimiterStore) cleanupStale(ctx context.Context, interval, idleTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeIdle(time.Now().Add(-idleTimeout))
		}
	}
}
