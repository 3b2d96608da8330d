// Package usecase implements account registration, login verification, vault key
// retrieval, account deletion and the atomic credential rotation.
package usecase

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/zkvault/zkvault/internal/user/domain"
	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create returns ErrUserAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *userDomain.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// LockByID takes an exclusive row lock on the user inside the current
	// transaction. While held, no vault item can be inserted for the user because
	// the foreign key check needs a conflicting share lock on the same row.
	// Returns ErrUserNotFound when the user does not exist.
	LockByID(ctx context.Context, id uuid.UUID) error

	// UpdateCredentials writes the digest and vault key material only while the
	// stored digest still equals previousDigest. Returns ErrIncorrectAuthHash otherwise.
	UpdateCredentials(ctx context.Context, user *userDomain.User, previousDigest string) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// VaultItemRepository is the part of the vault store the rotation needs.
type VaultItemRepository interface {
	// LockOwnedIDs lists and row-locks every item owned by ownerID.
	LockOwnedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	// Update rewrites one item scoped to item.OwnerID.
	Update(ctx context.Context, item *vaultDomain.VaultItem) error
}

// UserUseCase defines account operations.
type UserUseCase interface {
	Register(ctx context.Context, input *userDomain.RegisterInput) (*userDomain.User, error)

	// Authenticate verifies an email and auth hash pair. Unknown emails and wrong
	// hashes both return ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, authHash string) (*userDomain.User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	GetVaultKeyMaterial(ctx context.Context, userID uuid.UUID) (*userDomain.VaultKeyMaterial, error)

	// DeleteAccount removes the user and everything it owns after verifying authHash.
	DeleteAccount(ctx context.Context, userID uuid.UUID, authHash string) error
}

// RotationUseCase replaces a user's credentials and re-encrypted vault in one transaction.
type RotationUseCase interface {
	// RotateCredentials checks the current auth hash and ownership of every listed
	// vault item before writing anything. Either every write commits or none does.
	// Storage failures are reported as apperrors.ErrTransient.
	RotateCredentials(ctx context.Context, userID uuid.UUID, input *userDomain.RotateCredentialsInput) error
}
