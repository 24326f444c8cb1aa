// Package mocks provides testify mock implementations of the access-control interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
)

// MockTokenSigner is a mock implementation of service.TokenSigner.
type MockTokenSigner struct {
	mock.Mock
}

// Sign mocks the Sign method of TokenSigner.
func (m *MockTokenSigner) Sign(path string, ttl time.Duration) (*authDomain.CapabilityToken, error) {
	args := m.Called(path, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CapabilityToken), args.Error(1)
}

// Verify mocks the Verify method of TokenSigner.
func (m *MockTokenSigner) Verify(path, exp, sig string) bool {
	args := m.Called(path, exp, sig)
	return args.Bool(0)
}

// MockCodeMailer is a mock implementation of service.CodeMailer.
type MockCodeMailer struct {
	mock.Mock
}

// SendCode mocks the SendCode method of CodeMailer.
func (m *MockCodeMailer) SendCode(ctx context.Context, subject, code string, ttl time.Duration) error {
	args := m.Called(ctx, subject, code, ttl)
	return args.Error(0)
}

// MockOTPLedger is a mock implementation of OTPLedger.
type MockOTPLedger struct {
	mock.Mock
}

// Issue mocks the Issue method of OTPLedger.
func (m *MockOTPLedger) Issue(ctx context.Context, subject string) (*authDomain.OTPRecord, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.OTPRecord), args.Error(1)
}

// Verify mocks the Verify method of OTPLedger.
func (m *MockOTPLedger) Verify(ctx context.Context, subject, candidate string) authDomain.VerifyOutcome {
	args := m.Called(ctx, subject, candidate)
	return args.Get(0).(authDomain.VerifyOutcome)
}

// RemainingTTL mocks the RemainingTTL method of OTPLedger.
func (m *MockOTPLedger) RemainingTTL(ctx context.Context, subject string) time.Duration {
	args := m.Called(ctx, subject)
	return args.Get(0).(time.Duration)
}

// Sweep mocks the Sweep method of OTPLedger.
func (m *MockOTPLedger) Sweep(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

// Len mocks the Len method of OTPLedger.
func (m *MockOTPLedger) Len() int {
	args := m.Called()
	return args.Int(0)
}

// MockRateLimiter is a mock implementation of RateLimiter.
type MockRateLimiter struct {
	mock.Mock
}

// Check mocks the Check method of RateLimiter.
func (m *MockRateLimiter) Check(
	ctx context.Context,
	key string,
	window time.Duration,
	max int,
) (*authDomain.RateLimitDecision, error) {
	args := m.Called(ctx, key, window, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RateLimitDecision), args.Error(1)
}

// Sweep mocks the Sweep method of RateLimiter.
func (m *MockRateLimiter) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	args := m.Called(ctx, idle)
	return args.Int(0), args.Error(1)
}

// MockAuthorizationGateway is a mock implementation of AuthorizationGateway.
type MockAuthorizationGateway struct {
	mock.Mock
}

// AuthorizeResource mocks the AuthorizeResource method of AuthorizationGateway.
func (m *MockAuthorizationGateway) AuthorizeResource(
	ctx context.Context,
	path, exp, sig string,
) authDomain.AccessDecision {
	args := m.Called(ctx, path, exp, sig)
	return args.Get(0).(authDomain.AccessDecision)
}

// IssueOTP mocks the IssueOTP method of AuthorizationGateway.
func (m *MockAuthorizationGateway) IssueOTP(
	ctx context.Context,
	subject string,
) (*authDomain.IssueOTPOutput, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssueOTPOutput), args.Error(1)
}

// VerifyOTP mocks the VerifyOTP method of AuthorizationGateway.
func (m *MockAuthorizationGateway) VerifyOTP(
	ctx context.Context,
	subject, candidate string,
) (authDomain.VerifyOutcome, error) {
	args := m.Called(ctx, subject, candidate)
	return args.Get(0).(authDomain.VerifyOutcome), args.Error(1)
}

// SweepExpired mocks the SweepExpired method of AuthorizationGateway.
func (m *MockAuthorizationGateway) SweepExpired(ctx context.Context) (*authDomain.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SweepResult), args.Error(1)
}

// MockPlaybackUseCase is a mock implementation of PlaybackUseCase.
type MockPlaybackUseCase struct {
	mock.Mock
}

// SignVideo mocks the SignVideo method of PlaybackUseCase.
func (m *MockPlaybackUseCase) SignVideo(ctx context.Context, videoID string) (*authDomain.SignedPlayback, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SignedPlayback), args.Error(1)
}
