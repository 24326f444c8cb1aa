package usecase

import (
	"context"
	"log/slog"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	authService "github.com/allisson/streamgate/internal/auth/service"
)

// otpRateLimitPrefix namespaces passcode issuance counters in the shared rate limiter.
const otpRateLimitPrefix = "otp:"

// GatewayConfig holds the tunable policies of the authorization gateway.
type GatewayConfig struct {
	// ResendWindow and ResendMax bound how often a subject may request a passcode.
	ResendWindow time.Duration
	ResendMax    int

	// IdleEviction is how long after its window reset a rate-limit counter is kept.
	IdleEviction time.Duration
}

// DefaultGatewayConfig returns one passcode per subject every five minutes.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		ResendWindow: 5 * time.Minute,
		ResendMax:    1,
		IdleEviction: time.Hour,
	}
}

type authorizationGateway struct {
	signer  authService.TokenSigner
	ledger  OTPLedger
	limiter RateLimiter
	mailer  authService.CodeMailer
	config  GatewayConfig
	logger  *slog.Logger
}

// AuthorizeResource verifies the capability token carried by a proxied request.
func (g *authorizationGateway) AuthorizeResource(
	ctx context.Context,
	path, exp, sig string,
) authDomain.AccessDecision {
	if g.signer.Verify(path, exp, sig) {
		return authDomain.AccessAllow
	}
	return authDomain.AccessDeny
}

// IssueOTP issues a passcode for subject.
//
// This method:
// 1. Refuses while a previously issued code is still live
// 2. Counts the request against the subject's resend window
// 3. Stores a new code in the ledger
// 4. Hands the code to the mailer; delivery failures are logged, not returned
func (g *authorizationGateway) IssueOTP(
	ctx context.Context,
	subject string,
) (*authDomain.IssueOTPOutput, error) {
	subject = authDomain.NormalizeSubject(subject)
	if subject == "" {
		return nil, authDomain.ErrInvalidSubject
	}

	// A shorter resend window must not let a subject replace a live code. The refusal
	// is checked before the limiter so it does not consume resend quota.
	if remaining := g.ledger.RemainingTTL(ctx, subject); remaining > 0 {
		return nil, &authDomain.RateLimitedError{
			RetryAfter: remaining,
			Limit:      g.config.ResendMax,
		}
	}

	decision, err := g.limiter.Check(ctx, otpRateLimitPrefix+subject, g.config.ResendWindow, g.config.ResendMax)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, authDomain.NewRateLimitedError(decision)
	}

	record, err := g.ledger.Issue(ctx, subject)
	if err != nil {
		return nil, err
	}

	if err := g.mailer.SendCode(ctx, subject, record.Code, authDomain.OTPTTL); err != nil {
		g.logger.Error("failed to deliver otp code",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
	}

	return &authDomain.IssueOTPOutput{
		Subject:   record.Subject,
		Code:      record.Code,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// VerifyOTP checks candidate against subject's live code and logs the precise outcome.
func (g *authorizationGateway) VerifyOTP(
	ctx context.Context,
	subject, candidate string,
) (authDomain.VerifyOutcome, error) {
	subject = authDomain.NormalizeSubject(subject)
	if subject == "" {
		return authDomain.VerifyNotFound, authDomain.ErrInvalidSubject
	}

	// Malformed candidates never reach the ledger, so they cost no attempts.
	if !authDomain.IsWellFormedCode(candidate) {
		return authDomain.VerifyNotFound, authDomain.ErrMalformedCode
	}

	outcome := g.ledger.Verify(ctx, subject, candidate)

	level := slog.LevelInfo
	if !outcome.OK() {
		level = slog.LevelWarn
	}
	g.logger.Log(ctx, level, "otp verification",
		slog.String("subject", subject),
		slog.String("outcome", string(outcome)),
	)

	return outcome, nil
}

// SweepExpired removes expired passcodes and idle rate-limit counters.
func (g *authorizationGateway) SweepExpired(ctx context.Context) (*authDomain.SweepResult, error) {
	result := &authDomain.SweepResult{
		OTPRecords: g.ledger.Sweep(ctx),
	}

	removed, err := g.limiter.Sweep(ctx, g.config.IdleEviction)
	if err != nil {
		return result, err
	}
	result.RateLimitCounters = removed

	return result, nil
}

// NewAuthorizationGateway creates a new AuthorizationGateway.
func NewAuthorizationGateway(
	signer authService.TokenSigner,
	ledger OTPLedger,
	limiter RateLimiter,
	mailer authService.CodeMailer,
	config GatewayConfig,
	logger *slog.Logger,
) AuthorizationGateway {
	return &authorizationGateway{
		signer:  signer,
		ledger:  ledger,
		limiter: limiter,
		mailer:  mailer,
		config:  config,
		logger:  logger,
	}
}
