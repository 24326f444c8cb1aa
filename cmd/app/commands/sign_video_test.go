package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	authMocks "github.com/allisson/streamgate/internal/auth/usecase/mocks"
)

func TestRunSignVideo(t *testing.T) {
	ctx := context.Background()
	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockPlaybackUseCase{}
		mockUseCase.On("SignVideo", ctx, "intro").Return(&authDomain.SignedPlayback{
			VideoID:   "intro",
			URL:       "https://cdn.example.com/hls/intro/master.m3u8?exp=1&sig=ab",
			ExpiresAt: expiresAt,
		}, nil)

		var out bytes.Buffer
		err := RunSignVideo(ctx, mockUseCase, discardLogger(), &out, "intro", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "https://cdn.example.com/hls/intro/master.m3u8?exp=1&sig=ab")
		assert.Contains(t, out.String(), "2026-01-02T03:04:05Z")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockPlaybackUseCase{}
		mockUseCase.On("SignVideo", ctx, "intro").Return(&authDomain.SignedPlayback{
			VideoID:   "intro",
			URL:       "/hls/intro/master.m3u8?exp=1&sig=ab",
			ExpiresAt: expiresAt,
		}, nil)

		var out bytes.Buffer
		err := RunSignVideo(ctx, mockUseCase, discardLogger(), &out, "intro", "json")

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"expires_at": "2026-01-02T03:04:05Z"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("not-ready", func(t *testing.T) {
		mockUseCase := &authMocks.MockPlaybackUseCase{}
		mockUseCase.On("SignVideo", ctx, "pending").Return(nil, authDomain.ErrVideoNotReady)

		err := RunSignVideo(ctx, mockUseCase, discardLogger(), &bytes.Buffer{}, "pending", "text")

		require.Error(t, err)
		assert.ErrorIs(t, err, authDomain.ErrVideoNotReady)
		mockUseCase.AssertExpectations(t)
	})
}
