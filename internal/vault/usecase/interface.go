// Package usecase defines the vault item business logic. Every operation is
// scoped to the authenticated owner.
package usecase

import (
	"context"

	"github.com/google/uuid"

	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

// VaultItemRepository defines persistence operations for vault items.
// Implementations must support transaction-aware operations via context propagation.
type VaultItemRepository interface {
	Create(ctx context.Context, item *vaultDomain.VaultItem) error

	// GetByID returns ErrVaultItemNotFound when the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.VaultItem, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*vaultDomain.VaultItem, error)

	// Update and Delete only touch rows owned by the given owner and return
	// ErrVaultItemNotFound when nothing matched.
	Update(ctx context.Context, item *vaultDomain.VaultItem) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// VaultItemUseCase defines the operations available on a user's vault.
type VaultItemUseCase interface {
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*vaultDomain.VaultItem, error)

	Create(ctx context.Context, ownerID uuid.UUID, site, encryptedPassword string) (*vaultDomain.VaultItem, error)

	// Update returns ErrVaultItemNotOwned when the item belongs to another user.
	Update(
		ctx context.Context,
		ownerID, id uuid.UUID,
		site, encryptedPassword string,
	) (*vaultDomain.VaultItem, error)

	// Delete returns ErrVaultItemNotOwned when the item belongs to another user.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
