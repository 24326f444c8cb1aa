package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/streamgate/internal/auth/usecase"
)

// RunSignVideo prints a signed master playlist URL for a packaged video.
func RunSignVideo(
	ctx context.Context,
	playbackUseCase authUseCase.PlaybackUseCase,
	logger *slog.Logger,
	writer io.Writer,
	videoID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	playback, err := playbackUseCase.SignVideo(ctx, videoID)
	if err != nil {
		return fmt.Errorf("failed to sign video %q: %w", videoID, err)
	}

	logger.Debug("signed video", slog.String("video_id", videoID))

	output := signedURLOutput{URL: playback.URL, ExpiresAt: playback.ExpiresAt}
	if format == "json" {
		return writeJSON(writer, output)
	}

	_, err = fmt.Fprintf(writer, "%s\n# expires at %s\n", output.URL, output.ExpiresAt.Format(time.RFC3339))
	return err
}
