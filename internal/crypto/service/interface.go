// Package service provides the AEAD ciphers and the KMS integration used to seal
// shared secret content before it is stored.
package service

import (
	"context"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KMSService opens keepers for an external KMS.
type KMSService interface {
	// OpenKeeper opens a keeper for the provider named by keyURI.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

// ContentSealer seals and opens shared secret content under the server content key.
// The AAD binds a ciphertext to the record it belongs to.
type ContentSealer interface {
	Seal(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Open returns cryptoDomain.ErrDecryptionFailed when authentication fails.
	Open(ciphertext, nonce, aad []byte) ([]byte, error)
}
