// Package dto provides data transfer objects for the access-control HTTP endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/streamgate/internal/validation"
)

// IssueOTPRequest asks for a passcode to be sent to Email.
type IssueOTPRequest struct {
	Email string `json:"email"`
}

// Validate checks if the issue request is valid.
func (r *IssueOTPRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 254),
			customValidation.Email,
		),
	)
}

// VerifyOTPRequest submits a passcode for Email.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate checks if the verify request is valid.
func (r *VerifyOTPRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 254),
			customValidation.Email,
		),
		validation.Field(&r.Code,
			validation.Required,
			customValidation.OTPCode,
		),
	)
}

// SignPlaybackRequest carries the video id taken from the route.
type SignPlaybackRequest struct {
	VideoID string
}

// Validate checks if the video id is usable as a path segment.
func (r *SignPlaybackRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.VideoID,
			validation.Required,
			customValidation.VideoID,
		),
	)
}
