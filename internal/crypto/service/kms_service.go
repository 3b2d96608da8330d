package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadContentKey decodes the base64 content key. When keyURI is set the decoded
// value is a KMS ciphertext and is unwrapped through the keeper first.
func LoadContentKey(ctx context.Context, kms KMSService, encodedKey, keyURI string) ([]byte, error) {
	if encodedKey == "" {
		return nil, fmt.Errorf("%w: CONTENT_ENCRYPTION_KEY is not set", cryptoDomain.ErrInvalidContentKey)
	}

	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidContentKey, err)
	}

	key := raw
	if keyURI != "" {
		keeper, err := kms.OpenKeeper(ctx, keyURI)
		if err != nil {
			return nil, err
		}
		defer keeper.Close() //nolint:errcheck

		key, err = keeper.Decrypt(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap content key: %w", err)
		}
	}

	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("%w: content key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, cryptoDomain.KeySize, len(key))
	}
	return key, nil
}
