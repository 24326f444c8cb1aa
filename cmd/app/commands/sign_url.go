package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	authService "github.com/allisson/streamgate/internal/auth/service"
)

// signedURLOutput is the json rendering of a signed URL.
type signedURLOutput struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RunSignURL signs path for ttl and prints the resulting URL, prefixed by baseURL.
// The path must be absolute and carry no query string.
func RunSignURL(
	ctx context.Context,
	signer authService.TokenSigner,
	logger *slog.Logger,
	writer io.Writer,
	path string,
	ttl time.Duration,
	baseURL string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if !strings.HasPrefix(path, "/") || strings.ContainsAny(path, "?#") {
		return fmt.Errorf("path must start with '/' and must not contain a query: %q", path)
	}

	token, err := signer.Sign(path, ttl)
	if err != nil {
		return fmt.Errorf("failed to sign path: %w", err)
	}

	output := signedURLOutput{
		URL:       strings.TrimRight(baseURL, "/") + token.SignedPath(),
		ExpiresAt: time.Unix(token.ExpiresAt, 0).UTC(),
	}

	logger.Debug("signed url", slog.String("path", path), slog.Time("expires_at", output.ExpiresAt))

	if format == "json" {
		return writeJSON(writer, output)
	}

	_, err = fmt.Fprintf(writer, "%s\n# expires at %s\n", output.URL, output.ExpiresAt.Format(time.RFC3339))
	return err
}
