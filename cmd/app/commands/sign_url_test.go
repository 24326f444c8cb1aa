package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/streamgate/internal/auth/service"
	"github.com/allisson/streamgate/internal/clock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunSignURL(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	signer, err := authService.NewTokenSigner([]byte("cli-secret"), clock.NewManual(now))
	require.NoError(t, err)

	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunSignURL(ctx, signer, discardLogger(), &out,
			"/hls/intro/master.m3u8", 10*time.Minute, "https://cdn.example.com/", "text")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)

		parsed, err := url.Parse(lines[0])
		require.NoError(t, err)
		assert.Equal(t, "cdn.example.com", parsed.Host)
		assert.Equal(t, "/hls/intro/master.m3u8", parsed.Path)
		assert.Equal(t, "1700000600", parsed.Query().Get("exp"))
		assert.True(t, signer.Verify(parsed.Path, parsed.Query().Get("exp"), parsed.Query().Get("sig")))
		assert.Contains(t, lines[1], "2023-11-14T22:23:20Z")
	})

	t.Run("json-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunSignURL(ctx, signer, discardLogger(), &out, "/hls/intro/seg1.ts", time.Minute, "", "json")
		require.NoError(t, err)

		var decoded signedURLOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.True(t, strings.HasPrefix(decoded.URL, "/hls/intro/seg1.ts?exp=1700000060&sig="))
		assert.Equal(t, now.Add(time.Minute).UTC(), decoded.ExpiresAt)
	})

	t.Run("relative-path", func(t *testing.T) {
		err := RunSignURL(ctx, signer, discardLogger(), &bytes.Buffer{}, "hls/a.ts", time.Minute, "", "text")
		require.Error(t, err)
	})

	t.Run("path-with-query", func(t *testing.T) {
		err := RunSignURL(ctx, signer, discardLogger(), &bytes.Buffer{}, "/hls/a.ts?x=1", time.Minute, "", "text")
		require.Error(t, err)
	})

	t.Run("sub-second-ttl", func(t *testing.T) {
		err := RunSignURL(ctx, signer, discardLogger(), &bytes.Buffer{}, "/hls/a.ts", time.Millisecond, "", "text")
		require.Error(t, err)
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunSignURL(ctx, signer, discardLogger(), &bytes.Buffer{}, "/hls/a.ts", time.Minute, "", "yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}
