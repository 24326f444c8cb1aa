package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	authService "github.com/allisson/streamgate/internal/auth/service"
)

// RunEncryptSecret encrypts a stream secret under kmsKeyURI and prints the environment
// lines that make the server decrypt it at startup. An empty secret is read from the
// first line of ioTuple.Reader.
func RunEncryptSecret(
	ctx context.Context,
	logger *slog.Logger,
	ioTuple IOTuple,
	kmsKeyURI string,
	secret string,
) error {
	if kmsKeyURI == "" {
		return fmt.Errorf("--kms-key-uri is required")
	}

	if secret == "" {
		scanner := bufio.NewScanner(ioTuple.Reader)
		if scanner.Scan() {
			secret = strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
	}

	ciphertext, err := authService.EncryptSecret(ctx, kmsKeyURI, []byte(secret))
	if err != nil {
		return err
	}

	logger.Debug("encrypted stream secret", slog.Int("ciphertext_len", len(ciphertext)))

	_, err = fmt.Fprintf(ioTuple.Writer,
		"STREAM_SECRET_KMS_KEY_URI=%q\nSTREAM_SECRET_CIPHERTEXT=%q\n",
		kmsKeyURI, ciphertext,
	)
	return err
}
