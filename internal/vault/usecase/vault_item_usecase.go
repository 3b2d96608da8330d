package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

type vaultItemUseCase struct {
	vaultItemRepo VaultItemRepository
}

func (v *vaultItemUseCase) List(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.VaultItem, error) {
	return v.vaultItemRepo.ListByOwner(ctx, ownerID, offset, limit)
}

func (v *vaultItemUseCase) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	site, encryptedPassword string,
) (*vaultDomain.VaultItem, error) {
	now := time.Now().UTC()
	item := &vaultDomain.VaultItem{
		ID:                uuid.Must(uuid.NewV7()),
		OwnerID:           ownerID,
		Site:              site,
		EncryptedPassword: encryptedPassword,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := v.vaultItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (v *vaultItemUseCase) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	site, encryptedPassword string,
) (*vaultDomain.VaultItem, error) {
	item, err := v.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	item.Site = site
	item.EncryptedPassword = encryptedPassword
	item.UpdatedAt = time.Now().UTC()

	if err := v.vaultItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (v *vaultItemUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := v.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return v.vaultItemRepo.Delete(ctx, ownerID, id)
}

func (v *vaultItemUseCase) getOwned(ctx context.Context, ownerID, id uuid.UUID) (*vaultDomain.VaultItem, error) {
	item, err := v.vaultItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, vaultDomain.ErrVaultItemNotOwned
	}
	return item, nil
}

// NewVaultItemUseCase creates a new VaultItemUseCase.
func NewVaultItemUseCase(vaultItemRepo VaultItemRepository) VaultItemUseCase {
	return &vaultItemUseCase{vaultItemRepo: vaultItemRepo}
}
