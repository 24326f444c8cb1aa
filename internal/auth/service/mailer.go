package service

import (
	"context"
	"log/slog"
	"time"
)

// logMailer is a CodeMailer that records dispatch in the application log instead of
// sending mail. Used when no mail transport is wired in.
type logMailer struct {
	logger      *slog.Logger
	includeCode bool
}

// NewLogMailer creates a CodeMailer that logs each dispatch. The code itself is only
// written when includeCode is set (local development).
func NewLogMailer(logger *slog.Logger, includeCode bool) CodeMailer {
	return &logMailer{logger: logger, includeCode: includeCode}
}

// SendCode logs the dispatch and never fails.
func (m *logMailer) SendCode(ctx context.Context, subject, code string, ttl time.Duration) error {
	attrs := []any{
		slog.String("subject", subject),
		slog.Duration("ttl", ttl),
	}
	if m.includeCode {
		attrs = append(attrs, slog.String("code", code))
	}

	m.logger.InfoContext(ctx, "otp code dispatched", attrs...)
	return nil
}
