package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
)

// codeRange is the number of distinct codes in [OTPMinCode, OTPMaxCode].
var codeRange = big.NewInt(authDomain.OTPMaxCode - authDomain.OTPMinCode + 1)

// randomCodeGenerator draws codes uniformly with rejection sampling (crypto/rand.Int),
// so no modulo bias is introduced.
type randomCodeGenerator struct {
	reader io.Reader
}

// NewCodeGenerator creates a CodeGenerator backed by crypto/rand.
func NewCodeGenerator() CodeGenerator {
	return &randomCodeGenerator{reader: rand.Reader}
}

// NewCodeGeneratorWithReader creates a CodeGenerator reading entropy from r.
func NewCodeGeneratorWithReader(r io.Reader) CodeGenerator {
	return &randomCodeGenerator{reader: r}
}

// Generate returns a code in [100000, 999999].
func (g *randomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(g.reader, codeRange)
	if err != nil {
		return "", fmt.Errorf("%w: %v", authDomain.ErrRandomSource, err)
	}
	return fmt.Sprintf("%0*d", authDomain.OTPLength, n.Int64()+authDomain.OTPMinCode), nil
}
