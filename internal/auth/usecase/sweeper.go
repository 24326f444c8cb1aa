package usecase

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically removes expired passcodes and idle rate-limit counters so that
// abandoned subjects and keys do not accumulate.
type Sweeper struct {
	gateway  AuthorizationGateway
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a Sweeper running every interval.
func NewSweeper(gateway AuthorizationGateway, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		gateway:  gateway,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("starting expiry sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping expiry sweeper")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) {
	result, err := s.gateway.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("failed to sweep expired entries", slog.Any("error", err))
	}
	if result == nil {
		return
	}

	s.logger.Debug("swept expired entries",
		slog.Int("otp_records", result.OTPRecords),
		slog.Int("rate_limit_counters", result.RateLimitCounters),
	)
}
