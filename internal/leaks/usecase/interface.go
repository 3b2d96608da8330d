// Package usecase implements the breach lookup aggregator.
package usecase

import (
	"context"
)

// Provider answers whether an identifier appears in a breach corpus. Any error
// means the provider could not answer.
type Provider interface {
	Name() string
	Check(ctx context.Context, identifier string) (bool, error)
}

// LeakUseCase fans a breach query out to every configured provider.
type LeakUseCase interface {
	// CheckEmail reports whether the email appears in any known breach.
	CheckEmail(ctx context.Context, email string) (bool, error)

	// CheckPassword reports whether the SHA-1 hex digest of a password appears in
	// any known breach.
	CheckPassword(ctx context.Context, sha1Hex string) (bool, error)
}
