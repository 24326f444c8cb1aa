package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/streamgate/internal/auth/http/dto"
	authUseCase "github.com/allisson/streamgate/internal/auth/usecase"
	"github.com/allisson/streamgate/internal/httputil"
	customValidation "github.com/allisson/streamgate/internal/validation"
)

// PlaybackHandler mints signed playback URLs.
type PlaybackHandler struct {
	playbackUseCase authUseCase.PlaybackUseCase
	logger          *slog.Logger
}

// NewPlaybackHandler creates a new playback handler.
func NewPlaybackHandler(playbackUseCase authUseCase.PlaybackUseCase, logger *slog.Logger) *PlaybackHandler {
	return &PlaybackHandler{
		playbackUseCase: playbackUseCase,
		logger:          logger,
	}
}

// SignHandler returns a signed URL for a video's HLS master playlist.
// POST /v1/playback/:id/sign - Returns 200 with url and expires_at, 400 for a malformed
// id and 409 when the video has not been packaged yet.
func (h *PlaybackHandler) SignHandler(c *gin.Context) {
	req := dto.SignPlaybackRequest{VideoID: c.Param("id")}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	playback, err := h.playbackUseCase.SignVideo(c.Request.Context(), req.VideoID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSignedPlaybackToResponse(playback))
}
