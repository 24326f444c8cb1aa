package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	apperrors "github.com/allisson/streamgate/internal/errors"
	"github.com/allisson/streamgate/internal/metrics"
)

const metricsDomain = "auth"

// gatewayWithMetrics decorates AuthorizationGateway with metrics instrumentation.
type gatewayWithMetrics struct {
	next    AuthorizationGateway
	metrics metrics.BusinessMetrics
}

// NewAuthorizationGatewayWithMetrics wraps an AuthorizationGateway with metrics recording.
func NewAuthorizationGatewayWithMetrics(
	gateway AuthorizationGateway,
	m metrics.BusinessMetrics,
) AuthorizationGateway {
	return &gatewayWithMetrics{
		next:    gateway,
		metrics: m,
	}
}

// AuthorizeResource records metrics with the access decision as status.
func (g *gatewayWithMetrics) AuthorizeResource(
	ctx context.Context,
	path, exp, sig string,
) authDomain.AccessDecision {
	start := time.Now()
	decision := g.next.AuthorizeResource(ctx, path, exp, sig)

	g.record(ctx, "authorize_resource", start, string(decision))

	return decision
}

// IssueOTP records metrics for passcode issuance. Refusals are tagged rate_limited.
func (g *gatewayWithMetrics) IssueOTP(
	ctx context.Context,
	subject string,
) (*authDomain.IssueOTPOutput, error) {
	start := time.Now()
	output, err := g.next.IssueOTP(ctx, subject)

	status := "success"
	if err != nil {
		status = "error"
		if apperrors.Is(err, apperrors.ErrTooManyRequests) {
			status = "rate_limited"
		}
	}

	g.record(ctx, "otp_issue", start, status)

	return output, err
}

// VerifyOTP records metrics with the verification outcome as status.
func (g *gatewayWithMetrics) VerifyOTP(
	ctx context.Context,
	subject, candidate string,
) (authDomain.VerifyOutcome, error) {
	start := time.Now()
	outcome, err := g.next.VerifyOTP(ctx, subject, candidate)

	status := string(outcome)
	if err != nil {
		status = "error"
	}

	g.record(ctx, "otp_verify", start, status)

	return outcome, err
}

// SweepExpired records metrics for sweep runs.
func (g *gatewayWithMetrics) SweepExpired(ctx context.Context) (*authDomain.SweepResult, error) {
	start := time.Now()
	result, err := g.next.SweepExpired(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.record(ctx, "sweep", start, status)

	return result, err
}

func (g *gatewayWithMetrics) record(ctx context.Context, operation string, start time.Time, status string) {
	g.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	g.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// playbackUseCaseWithMetrics decorates PlaybackUseCase with metrics instrumentation.
type playbackUseCaseWithMetrics struct {
	next    PlaybackUseCase
	metrics metrics.BusinessMetrics
}

// NewPlaybackUseCaseWithMetrics wraps a PlaybackUseCase with metrics recording.
func NewPlaybackUseCaseWithMetrics(useCase PlaybackUseCase, m metrics.BusinessMetrics) PlaybackUseCase {
	return &playbackUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SignVideo records metrics for playback URL signing.
func (p *playbackUseCaseWithMetrics) SignVideo(
	ctx context.Context,
	videoID string,
) (*authDomain.SignedPlayback, error) {
	start := time.Now()
	playback, err := p.next.SignVideo(ctx, videoID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, metricsDomain, "playback_sign", status)
	p.metrics.RecordDuration(ctx, metricsDomain, "playback_sign", time.Since(start), status)

	return playback, err
}
