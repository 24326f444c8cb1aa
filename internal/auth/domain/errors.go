package domain

import (
	"github.com/allisson/streamgate/internal/errors"
)

// Access-control errors.
var (
	// ErrInvalidTTL indicates a token lifetime shorter than one second.
	ErrInvalidTTL = errors.Wrap(errors.ErrInvalidInput, "ttl must be at least one second")

	// ErrEmptySecret indicates the signing secret was not configured.
	ErrEmptySecret = errors.New("signing secret must not be empty")

	// ErrInvalidSubject indicates an empty OTP subject.
	ErrInvalidSubject = errors.Wrap(errors.ErrInvalidInput, "subject must not be empty")

	// ErrMalformedCode indicates a passcode candidate that is not exactly six ASCII digits.
	ErrMalformedCode = errors.Wrap(errors.ErrInvalidInput, "code must be 6 digits")

	// ErrInvalidVideoID indicates a malformed video identifier.
	ErrInvalidVideoID = errors.Wrap(errors.ErrInvalidInput, "invalid video id")

	// ErrVideoNotReady indicates the HLS master playlist has not been produced yet.
	ErrVideoNotReady = errors.Wrap(errors.ErrConflict, "video not ready")

	// ErrRandomSource indicates the secure random source failed.
	ErrRandomSource = errors.New("secure random source unavailable")
)
