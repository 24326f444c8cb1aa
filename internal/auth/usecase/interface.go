// Package usecase defines the access-control operations exposed to transports:
// resource authorization, one-time passcode issuance and verification, and playback
// URL signing.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
)

// OTPLedger stores at most one live passcode per subject.
// Implementations must linearize all operations on the same subject.
type OTPLedger interface {
	// Issue generates and stores a new code for subject, replacing any previous one.
	Issue(ctx context.Context, subject string) (*authDomain.OTPRecord, error)

	// Verify checks candidate against the live code. Every call that reaches a live
	// record consumes one attempt.
	Verify(ctx context.Context, subject, candidate string) authDomain.VerifyOutcome

	// RemainingTTL returns the time left on subject's live code, or 0.
	RemainingTTL(ctx context.Context, subject string) time.Duration

	// Sweep removes expired records and returns how many were removed.
	Sweep(ctx context.Context) int

	Len() int
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	// Check counts one request for key. The request is allowed while the count within
	// the current window is at most max.
	Check(ctx context.Context, key string, window time.Duration, max int) (*authDomain.RateLimitDecision, error)

	// Sweep evicts counters whose window reset at least idle ago.
	Sweep(ctx context.Context, idle time.Duration) (int, error)
}

// AuthorizationGateway composes token verification, the passcode ledger and the rate
// limiter into the operations called by the HTTP layer.
type AuthorizationGateway interface {
	// AuthorizeResource decides whether a proxied request carrying path, exp and sig may
	// be served. It performs no I/O.
	AuthorizeResource(ctx context.Context, path, exp, sig string) authDomain.AccessDecision

	// IssueOTP issues a passcode for subject and hands it to the mailer.
	//
	// Returns *RateLimitedError (matching ErrTooManyRequests) when subject requested a
	// code too recently, and ErrInvalidSubject for a blank subject.
	IssueOTP(ctx context.Context, subject string) (*authDomain.IssueOTPOutput, error)

	// VerifyOTP checks candidate for subject. Failure kinds are returned as outcomes,
	// not errors; callers exposing the result to clients must not distinguish them.
	// A candidate that is not six ASCII digits returns ErrMalformedCode without
	// touching the ledger.
	VerifyOTP(ctx context.Context, subject, candidate string) (authDomain.VerifyOutcome, error)

	// SweepExpired removes expired passcodes and idle rate-limit counters.
	SweepExpired(ctx context.Context) (*authDomain.SweepResult, error)
}

// PlaybackUseCase mints signed playback URLs for videos.
type PlaybackUseCase interface {
	// SignVideo returns a signed URL for the video's HLS master playlist.
	//
	// Returns ErrInvalidVideoID for a malformed id and ErrVideoNotReady when the master
	// playlist does not exist yet.
	SignVideo(ctx context.Context, videoID string) (*authDomain.SignedPlayback, error)
}
