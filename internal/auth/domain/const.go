// Package domain defines the access-control domain models: capability tokens for
// media playback, one-time passcode records for step-up login, and fixed-window
// rate-limit counters.
package domain

import "time"

const (
	// OTPLength is the number of digits in a one-time passcode.
	OTPLength = 6

	// OTPTTL is how long an issued passcode stays valid.
	OTPTTL = 300 * time.Second

	// OTPMaxAttempts is the number of verification attempts allowed per passcode.
	OTPMaxAttempts = 3

	// OTPMinCode and OTPMaxCode bound the passcode range (inclusive).
	OTPMinCode = 100000
	OTPMaxCode = 999999
)
