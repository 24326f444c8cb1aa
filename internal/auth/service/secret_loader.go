package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"

	// Register KMS drivers usable for the stream secret.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// SecretSource describes where the stream signing secret comes from.
type SecretSource struct {
	// Plaintext is used as-is when KeyURI is empty.
	Plaintext string
	// KeyURI is a gocloud.dev/secrets keeper URI (awskms://, gcpkms://, azurekeyvault://,
	// hashivault://, base64key://).
	KeyURI string
	// Ciphertext is the base64 (std) encoded secret encrypted under KeyURI.
	Ciphertext string
}

// LoadSecret resolves the signing secret once at startup. When a KMS key URI is set,
// the ciphertext is decrypted through the keeper; otherwise the plaintext is used.
func LoadSecret(ctx context.Context, src SecretSource) ([]byte, error) {
	if src.KeyURI == "" {
		if src.Plaintext == "" {
			return nil, authDomain.ErrEmptySecret
		}
		return []byte(src.Plaintext), nil
	}

	if src.Ciphertext == "" {
		return nil, fmt.Errorf("kms key uri set but ciphertext is empty: %w", authDomain.ErrEmptySecret)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(src.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret ciphertext: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, src.KeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secret: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, authDomain.ErrEmptySecret
	}

	return plaintext, nil
}

// EncryptSecret encrypts plaintext under keyURI and returns the base64 ciphertext in the
// form LoadSecret expects.
func EncryptSecret(ctx context.Context, keyURI string, plaintext []byte) (string, error) {
	if len(plaintext) == 0 {
		return "", authDomain.ErrEmptySecret
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
