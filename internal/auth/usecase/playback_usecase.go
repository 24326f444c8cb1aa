package usecase

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	authService "github.com/allisson/streamgate/internal/auth/service"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// PlaybackConfig holds playback URL settings.
type PlaybackConfig struct {
	// MediaRoot is the directory the proxy serves /hls from.
	MediaRoot string
	// PublicBaseURL is prepended to signed paths, e.g. https://cdn.example.com.
	PublicBaseURL string
	TTL           time.Duration
}

type playbackUseCase struct {
	signer authService.TokenSigner
	config PlaybackConfig
}

// SignVideo validates the id, confirms the master playlist exists and signs its path.
func (p *playbackUseCase) SignVideo(ctx context.Context, videoID string) (*authDomain.SignedPlayback, error) {
	if !videoIDPattern.MatchString(videoID) {
		return nil, authDomain.ErrInvalidVideoID
	}

	playlist := filepath.Join(p.config.MediaRoot, "hls", videoID, "master.m3u8")
	info, err := os.Stat(playlist)
	if err != nil || info.IsDir() {
		return nil, authDomain.ErrVideoNotReady
	}

	token, err := p.signer.Sign(authDomain.MasterPlaylistPath(videoID), p.config.TTL)
	if err != nil {
		return nil, err
	}

	return &authDomain.SignedPlayback{
		VideoID:   videoID,
		URL:       strings.TrimRight(p.config.PublicBaseURL, "/") + token.SignedPath(),
		ExpiresAt: time.Unix(token.ExpiresAt, 0).UTC(),
	}, nil
}

// NewPlaybackUseCase creates a new PlaybackUseCase.
func NewPlaybackUseCase(signer authService.TokenSigner, config PlaybackConfig) PlaybackUseCase {
	return &playbackUseCase{
		signer: signer,
		config: config,
	}
}
