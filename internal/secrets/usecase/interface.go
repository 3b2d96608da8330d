// Package usecase implements the shared secret lifecycle: creation, owner listing,
// token-gated access and revocation.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

// SecretRepository defines persistence operations for secrets.
// Implementations must support transaction-aware operations via context propagation.
type SecretRepository interface {
	Create(ctx context.Context, secret *secretsDomain.Secret) error

	// GetByID and GetByTokenHash return ErrSecretNotFound when nothing matches.
	GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*secretsDomain.Secret, error)

	// GetByTokenHashForUpdate locks the row until the surrounding transaction ends.
	GetByTokenHashForUpdate(ctx context.Context, tokenHash string) (*secretsDomain.Secret, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*secretsDomain.Secret, error)

	// DecrementRemaining, Delete and Revoke return ErrSecretNotFound when the row is gone.
	DecrementRemaining(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Revoke(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes secrets whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	CountExpired(ctx context.Context, now time.Time) (int64, error)
}

// SecretUseCase defines the shared secret operations.
type SecretUseCase interface {
	Create(
		ctx context.Context,
		ownerID uuid.UUID,
		input *secretsDomain.CreateSecretInput,
	) (*secretsDomain.CreatedSecret, error)

	ListOwned(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*secretsDomain.Secret, error)

	// Access consumes one access. Failures are reported in the order not found,
	// expired, revoked, exhausted, password; none of them consume an access.
	Access(ctx context.Context, token, password string) (*secretsDomain.AccessedSecret, error)

	// Revoke returns ErrSecretNotOwned when the secret belongs to another user.
	Revoke(ctx context.Context, ownerID, id uuid.UUID) error

	// CleanupExpired deletes expired secrets, or only counts them when dryRun is true.
	// Revoked secrets that have not expired are kept.
	CleanupExpired(ctx context.Context, dryRun bool) (int64, error)
}

// Limits bounds what a single secret may request.
type Limits struct {
	MaxTTL          time.Duration
	MaxAccesses     int
	MaxContentBytes int
}
