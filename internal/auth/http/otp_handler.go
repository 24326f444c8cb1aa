package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/streamgate/internal/auth/http/dto"
	authUseCase "github.com/allisson/streamgate/internal/auth/usecase"
	apperrors "github.com/allisson/streamgate/internal/errors"
	"github.com/allisson/streamgate/internal/httputil"
	customValidation "github.com/allisson/streamgate/internal/validation"
)

// OTPHandler handles passcode issuance and verification.
type OTPHandler struct {
	gateway  authUseCase.AuthorizationGateway
	echoCode bool
	logger   *slog.Logger
}

// NewOTPHandler creates a new OTP handler. When echoCode is true the issued passcode is
// returned in the response body; only enable it for local development.
func NewOTPHandler(gateway authUseCase.AuthorizationGateway, echoCode bool, logger *slog.Logger) *OTPHandler {
	return &OTPHandler{
		gateway:  gateway,
		echoCode: echoCode,
		logger:   logger,
	}
}

// IssueHandler issues a passcode for an email address.
// POST /v1/otp/issue - Returns 200 on success and 429 with Retry-After when the address
// requested a code too recently.
func (h *OTPHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.gateway.IssueOTP(c.Request.Context(), req.Email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssueOTPToResponse(output, h.echoCode))
}

// VerifyHandler checks a passcode.
// POST /v1/otp/verify - Returns 200 on success. Every failure kind (unknown address,
// expired, wrong code, too many attempts) yields the same 400 response.
func (h *OTPHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	outcome, err := h.gateway.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil && !apperrors.Is(err, apperrors.ErrInvalidInput) {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err != nil || !outcome.OK() {
		c.JSON(http.StatusBadRequest, httputil.ErrorResponse{
			Error:   "invalid_code",
			Message: "Invalid or expired code",
		})
		return
	}

	c.JSON(http.StatusOK, dto.VerifyOTPResponse{Success: true})
}
