package dto

import (
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
)

// IssueOTPResponse acknowledges an issued passcode. Code is only set in dev echo mode.
type IssueOTPResponse struct {
	Issued bool   `json:"issued"`
	Code   string `json:"code,omitempty"`
}

// MapIssueOTPToResponse converts an issuance output to an API response.
func MapIssueOTPToResponse(output *authDomain.IssueOTPOutput, echoCode bool) IssueOTPResponse {
	response := IssueOTPResponse{Issued: true}
	if echoCode {
		response.Code = output.Code
	}
	return response
}

// VerifyOTPResponse reports a successful verification.
type VerifyOTPResponse struct {
	Success bool `json:"success"`
}

// SignedPlaybackResponse contains a ready-to-use playback URL.
type SignedPlaybackResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapSignedPlaybackToResponse converts a signed playback to an API response.
func MapSignedPlaybackToResponse(playback *authDomain.SignedPlayback) SignedPlaybackResponse {
	return SignedPlaybackResponse{
		URL:       playback.URL,
		ExpiresAt: playback.ExpiresAt,
	}
}
