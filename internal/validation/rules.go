// Package validation provides the custom jellydator/validation rules shared by request
// DTOs and configuration.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/streamgate/internal/errors"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	otpCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
	videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format. Surrounding whitespace is tolerated since subjects are
// normalized before use.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(strings.TrimSpace(s))
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// OTPCode validates a six digit passcode.
var OTPCode = validation.NewStringRuleWithError(
	otpCodeRegex.MatchString,
	validation.NewError("validation_otp_code", "must be exactly 6 digits"),
)

// VideoID validates a video identifier usable as a single path segment.
var VideoID = validation.NewStringRuleWithError(
	videoIDRegex.MatchString,
	validation.NewError("validation_video_id", "must be 1-128 letters, digits, '_' or '-'"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
