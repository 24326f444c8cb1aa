package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/streamgate/internal/auth/service"
)

func localKeyURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

var ciphertextLine = regexp.MustCompile(`STREAM_SECRET_CIPHERTEXT=("[^"]*")`)

func TestRunEncryptSecret(t *testing.T) {
	ctx := context.Background()

	decode := func(t *testing.T, keyURI, output string) []byte {
		t.Helper()
		match := ciphertextLine.FindStringSubmatch(output)
		require.Len(t, match, 2)
		ciphertext, err := strconv.Unquote(match[1])
		require.NoError(t, err)

		secret, err := authService.LoadSecret(ctx, authService.SecretSource{KeyURI: keyURI, Ciphertext: ciphertext})
		require.NoError(t, err)
		return secret
	}

	t.Run("flag-secret", func(t *testing.T) {
		keyURI := localKeyURI(t)
		var out bytes.Buffer

		err := RunEncryptSecret(ctx, discardLogger(), IOTuple{Writer: &out}, keyURI, "from-flag")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "STREAM_SECRET_KMS_KEY_URI=")
		assert.Equal(t, []byte("from-flag"), decode(t, keyURI, out.String()))
	})

	t.Run("stdin-secret", func(t *testing.T) {
		keyURI := localKeyURI(t)
		var out bytes.Buffer

		err := RunEncryptSecret(ctx, discardLogger(), IOTuple{
			Reader: strings.NewReader("  from-stdin  \nignored\n"),
			Writer: &out,
		}, keyURI, "")

		require.NoError(t, err)
		assert.Equal(t, []byte("from-stdin"), decode(t, keyURI, out.String()))
	})

	t.Run("empty-secret", func(t *testing.T) {
		err := RunEncryptSecret(ctx, discardLogger(), IOTuple{
			Reader: strings.NewReader(""),
			Writer: &bytes.Buffer{},
		}, localKeyURI(t), "")
		require.Error(t, err)
	})

	t.Run("missing-key-uri", func(t *testing.T) {
		err := RunEncryptSecret(ctx, discardLogger(), IOTuple{Writer: &bytes.Buffer{}}, "", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})
}
