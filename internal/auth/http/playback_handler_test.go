package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	usecaseMocks "github.com/allisson/streamgate/internal/auth/usecase/mocks"
)

func setupPlaybackRouter(t *testing.T) (*gin.Engine, *usecaseMocks.MockPlaybackUseCase) {
	t.Helper()

	useCase := &usecaseMocks.MockPlaybackUseCase{}
	handler := NewPlaybackHandler(useCase, discardLogger())

	router := gin.New()
	router.POST("/v1/playback/:id/sign", handler.SignHandler)

	return router, useCase
}

func TestPlaybackHandler_SignHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, useCase := setupPlaybackRouter(t)
		playback := &authDomain.SignedPlayback{
			VideoID:   "vid_01",
			URL:       "https://cdn.example.com/hls/vid_01/master.m3u8?exp=1700000600&sig=ab",
			ExpiresAt: time.Unix(1_700_000_600, 0).UTC(),
		}
		useCase.On("SignVideo", mock.Anything, "vid_01").Return(playback, nil).Once()

		w := performRequest(router, http.MethodPost, "/v1/playback/vid_01/sign", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"url":"https://cdn.example.com/hls/vid_01/master.m3u8?exp=1700000600&sig=ab","expires_at":"2023-11-14T22:23:20Z"}`,
			w.Body.String(),
		)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		router, useCase := setupPlaybackRouter(t)

		w := performRequest(router, http.MethodPost, "/v1/playback/bad.id/sign", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_input", decodeBody(w)["error"])
		useCase.AssertNotCalled(t, "SignVideo", mock.Anything, mock.Anything)
	})

	t.Run("Error_NotReady", func(t *testing.T) {
		router, useCase := setupPlaybackRouter(t)
		useCase.On("SignVideo", mock.Anything, "pending").Return(nil, authDomain.ErrVideoNotReady).Once()

		w := performRequest(router, http.MethodPost, "/v1/playback/pending/sign", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeBody(w)["error"])
	})
}
