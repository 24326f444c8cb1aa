package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"time"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	"github.com/allisson/streamgate/internal/clock"
)

// hmacSigner implements TokenSigner with HMAC-SHA256 over "<path>:<exp>".
type hmacSigner struct {
	secret []byte
	clock  clock.Clock
}

// NewTokenSigner creates a TokenSigner keyed by secret. The secret is copied so later
// mutation by the caller cannot affect outstanding tokens.
func NewTokenSigner(secret []byte, clk clock.Clock) (TokenSigner, error) {
	if len(secret) == 0 {
		return nil, authDomain.ErrEmptySecret
	}
	if clk == nil {
		clk = clock.Real{}
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &hmacSigner{secret: key, clock: clk}, nil
}

// Sign computes exp = now + ttl and sig = hex(HMAC_SHA256(secret, path + ":" + exp)).
func (s *hmacSigner) Sign(path string, ttl time.Duration) (*authDomain.CapabilityToken, error) {
	ttlSeconds := int64(ttl / time.Second)
	if ttlSeconds <= 0 {
		return nil, authDomain.ErrInvalidTTL
	}

	exp := s.clock.Now().Unix() + ttlSeconds
	expStr := strconv.FormatInt(exp, 10)

	return &authDomain.CapabilityToken{
		Path:      path,
		ExpiresAt: exp,
		Signature: hex.EncodeToString(s.mac(path, expStr)),
	}, nil
}

// Verify checks expiry first, then compares the signature in constant time.
// The signature is recomputed over the literal exp string the caller supplied.
func (s *hmacSigner) Verify(path, exp, sig string) bool {
	expNum, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return false
	}

	if expNum < s.clock.Now().Unix() {
		return false
	}

	expected := hex.EncodeToString(s.mac(path, exp))
	return constantTimeEqual(expected, sig)
}

func (s *hmacSigner) mac(path, exp string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(path))
	mac.Write([]byte{':'})
	mac.Write([]byte(exp))
	return mac.Sum(nil)
}

// constantTimeEqual rejects length mismatches up front and otherwise compares every
// byte without early exit.
func constantTimeEqual(expected, given string) bool {
	if subtle.ConstantTimeEq(int32(len(expected)), int32(len(given))) != 1 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}
