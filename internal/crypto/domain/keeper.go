package domain

import "context"

// KMSKeeper unwraps key material held by an external KMS. *secrets.Keeper from
// gocloud.dev satisfies it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
