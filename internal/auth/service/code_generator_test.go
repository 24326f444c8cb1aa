package service

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestCodeGenerator_Generate(t *testing.T) {
	t.Run("Success_SixDigitsInRange", func(t *testing.T) {
		gen := NewCodeGenerator()

		for i := 0; i < 1000; i++ {
			code, err := gen.Generate()
			require.NoError(t, err)
			require.Regexp(t, sixDigits, code)
			assert.GreaterOrEqual(t, code, "100000")
		}
	})

	t.Run("Success_LowestValue", func(t *testing.T) {
		gen := NewCodeGeneratorWithReader(bytes.NewReader(make([]byte, 64)))

		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Equal(t, "100000", code)
	})

	t.Run("Error_RandomSourceFailure", func(t *testing.T) {
		gen := NewCodeGeneratorWithReader(failingReader{})

		code, err := gen.Generate()
		assert.ErrorIs(t, err, authDomain.ErrRandomSource)
		assert.Contains(t, err.Error(), "entropy exhausted")
		assert.Empty(t, code)
	})
}
