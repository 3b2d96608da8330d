// Package usecase implements the refresh token ledger and the login, refresh and
// logout session flows built on top of it.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// RefreshTokenRepository defines persistence operations for refresh tokens.
// Implementations must support transaction-aware operations via context propagation.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// GetByTokenHash returns ErrRefreshTokenNotFound if no record has the digest.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.RefreshToken, error)

	// DeleteByTokenHash returns ErrRefreshTokenNotFound if no row was deleted.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteExpired removes records expired at now or revoked.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	CountExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserAuthenticator verifies login credentials.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, email, authHash string) (*userDomain.User, error)
}

// RefreshTokenLedger issues, validates, rotates and revokes refresh tokens.
// Raw tokens are returned once and never persisted.
type RefreshTokenLedger interface {
	// Issue creates a refresh token for userID and returns the raw value.
	Issue(ctx context.Context, userID uuid.UUID) (string, error)

	// Validate returns the owning user of a usable token. Expired or revoked
	// records are deleted and reported as ErrRefreshTokenNotFound.
	Validate(ctx context.Context, rawToken string) (uuid.UUID, error)

	// RotateOnUse consumes rawToken and issues its replacement in one transaction.
	// A raw token can be rotated at most once.
	RotateOnUse(ctx context.Context, rawToken string) (newRawToken string, userID uuid.UUID, err error)

	// Revoke deletes the record if present. Unknown tokens are not an error.
	Revoke(ctx context.Context, rawToken string) error

	// CleanupExpired deletes expired and revoked records, or counts them when dryRun is set.
	CleanupExpired(ctx context.Context, dryRun bool) (int64, error)
}

// SessionUseCase exposes login, refresh and logout.
type SessionUseCase interface {
	Login(ctx context.Context, email, authHash string) (*authDomain.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*authDomain.Session, error)

	// Logout always succeeds from the client's point of view. A returned error
	// is a storage failure meant for logging only.
	Logout(ctx context.Context, refreshToken string) error
}
