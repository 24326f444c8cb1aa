package repository

import (
	"context"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	"github.com/allisson/streamgate/internal/clock"
)

// MemoryRateLimitStore is a fixed-window counter store kept in process memory.
type MemoryRateLimitStore struct {
	counters *lockTable[*authDomain.RateLimitCounter]
	clock    clock.Clock
}

// NewMemoryRateLimitStore creates an empty store.
func NewMemoryRateLimitStore(clk clock.Clock) *MemoryRateLimitStore {
	if clk == nil {
		clk = clock.Real{}
	}
	return &MemoryRateLimitStore{
		counters: newLockTable[*authDomain.RateLimitCounter](defaultShardCount),
		clock:    clk,
	}
}

// Check counts a request for key. The first request of a window (or the first after
// the window reset) starts a fresh counter at 1. Later requests increment it and are
// limited once the count exceeds max.
func (s *MemoryRateLimitStore) Check(
	ctx context.Context,
	key string,
	window time.Duration,
	max int,
) (*authDomain.RateLimitDecision, error) {
	now := s.clock.Now()
	var decision authDomain.RateLimitDecision

	s.counters.with(key, func(entries map[string]*authDomain.RateLimitCounter) {
		counter, ok := entries[key]
		if !ok || !now.Before(counter.WindowResetAt) {
			counter = &authDomain.RateLimitCounter{
				Key:           key,
				Count:         0,
				WindowResetAt: now.Add(window),
			}
			entries[key] = counter
		}

		counter.Count++
		decision = buildDecision(counter.Count, max, counter.WindowResetAt, now)
	})

	return &decision, nil
}

// Sweep removes counters whose window reset at least idle ago.
func (s *MemoryRateLimitStore) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	threshold := s.clock.Now().Add(-idle)
	removed := 0

	s.counters.each(func(entries map[string]*authDomain.RateLimitCounter) {
		for key, counter := range entries {
			if !counter.WindowResetAt.After(threshold) {
				delete(entries, key)
				removed++
			}
		}
	})

	return removed, nil
}

// Len returns the number of tracked keys.
func (s *MemoryRateLimitStore) Len() int {
	return s.counters.len()
}

func buildDecision(count, max int, resetAt, now time.Time) authDomain.RateLimitDecision {
	decision := authDomain.RateLimitDecision{
		Allowed: count <= max,
		Count:   count,
		Limit:   max,
		ResetAt: resetAt,
	}
	if !decision.Allowed {
		decision.RetryAfter = resetAt.Sub(now)
	}
	return decision
}
