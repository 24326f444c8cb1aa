// Package service provides the stateless building blocks of the access-control layer:
// capability-token signing, passcode generation, passcode delivery and secret loading.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
)

// TokenSigner issues and verifies HMAC capability tokens for resource paths.
// Implementations are safe for concurrent use and hold no mutable state.
type TokenSigner interface {
	// Sign mints a token for path valid for ttl (truncated to whole seconds).
	// Returns ErrInvalidTTL when ttl is shorter than one second.
	Sign(path string, ttl time.Duration) (*authDomain.CapabilityToken, error)

	// Verify reports whether sig is a valid, unexpired signature of path and exp.
	// Malformed expiry, expired tokens and signature mismatches all return false.
	Verify(path, exp, sig string) bool
}

// CodeGenerator produces one-time passcodes.
type CodeGenerator interface {
	// Generate returns a uniformly random OTPLength-digit code. It fails rather than
	// falling back to a weaker randomness source.
	Generate() (string, error)
}

// CodeMailer delivers a passcode to its subject out-of-band.
type CodeMailer interface {
	SendCode(ctx context.Context, subject, code string, ttl time.Duration) error
}
