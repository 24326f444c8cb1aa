package domain

import (
	"strings"
	"time"
)

// OTPRecord is the single live passcode for a subject.
type OTPRecord struct {
	Subject   string
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Attempts  int
}

// NewOTPRecord creates a record issued at now with the standard TTL.
func NewOTPRecord(subject, code string, now time.Time) *OTPRecord {
	return &OTPRecord{
		Subject:   subject,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(OTPTTL),
		Attempts:  0,
	}
}

// IsExpired reports whether now is strictly past ExpiresAt.
func (r *OTPRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// RemainingTTL returns the whole seconds left before expiry, never negative.
func (r *OTPRecord) RemainingTTL(now time.Time) time.Duration {
	remaining := r.ExpiresAt.Sub(now).Truncate(time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// VerifyOutcome is the result of checking a candidate passcode.
type VerifyOutcome string

const (
	// VerifySuccess means the candidate matched and the record was consumed.
	VerifySuccess VerifyOutcome = "success"
	// VerifyNotFound means no live record exists for the subject.
	VerifyNotFound VerifyOutcome = "not_found"
	// VerifyExpired means the record had expired and was removed.
	VerifyExpired VerifyOutcome = "expired"
	// VerifyTooManyAttempts means the attempt cap was reached and the record was removed.
	VerifyTooManyAttempts VerifyOutcome = "too_many_attempts"
	// VerifyMismatch means the candidate was wrong; the record is kept.
	VerifyMismatch VerifyOutcome = "mismatch"
)

// OK reports whether the outcome is a successful verification.
func (o VerifyOutcome) OK() bool {
	return o == VerifySuccess
}

// IssueOTPOutput is returned by a successful passcode issuance.
type IssueOTPOutput struct {
	Subject   string
	Code      string
	ExpiresAt time.Time
}

// NormalizeSubject canonicalizes an OTP subject (an email address) so that the same
// mailbox always maps to the same ledger entry and rate-limit key.
func NormalizeSubject(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}

// IsWellFormedCode reports whether code has the shape of an issued passcode:
// exactly OTPLength ASCII digits.
func IsWellFormedCode(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
