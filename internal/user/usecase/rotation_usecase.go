package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/hashing"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

type rotationUseCase struct {
	txManager     database.TxManager
	userRepo      UserRepository
	vaultItemRepo VaultItemRepository
	hasher        hashing.PasswordHasher
}

func (r *rotationUseCase) RotateCredentials(
	ctx context.Context,
	userID uuid.UUID,
	input *userDomain.RotateCredentialsInput,
) error {
	requested := make(map[uuid.UUID]struct{}, len(input.Items))
	for _, item := range input.Items {
		if _, dup := requested[item.ID]; dup {
			return userDomain.ErrDuplicateRotatedItem
		}
		requested[item.ID] = struct{}{}
	}

	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !r.hasher.Verify(input.CurrentAuthHash, user.AuthHashDigest) {
		return userDomain.ErrIncorrectAuthHash
	}

	newDigest, err := r.hasher.Hash(input.NewAuthHash)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rotated := &userDomain.User{
		ID:             user.ID,
		Email:          user.Email,
		AuthHashDigest: newDigest,
		VaultKeyBlob:   input.NewVaultKeyBlob,
		VaultKeyIV:     input.NewVaultKeyIV,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      now,
	}

	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		// The user row is locked before the items so a concurrent insert cannot
		// add an item the coverage check below would miss.
		if err := r.userRepo.LockByID(ctx, userID); err != nil {
			return err
		}

		ownedIDs, err := r.vaultItemRepo.LockOwnedIDs(ctx, userID)
		if err != nil {
			return err
		}

		owned := make(map[uuid.UUID]struct{}, len(ownedIDs))
		for _, id := range ownedIDs {
			owned[id] = struct{}{}
		}
		for _, item := range input.Items {
			if _, ok := owned[item.ID]; !ok {
				return vaultDomain.ErrVaultItemNotOwned
			}
		}
		if len(owned) != len(requested) {
			return userDomain.ErrIncompleteRotation
		}

		if err := r.userRepo.UpdateCredentials(ctx, rotated, user.AuthHashDigest); err != nil {
			return err
		}

		for _, item := range input.Items {
			rewrite := &vaultDomain.VaultItem{
				ID:                item.ID,
				OwnerID:           userID,
				Site:              item.Site,
				EncryptedPassword: item.EncryptedPassword,
				UpdatedAt:         now,
			}
			if err := r.vaultItemRepo.Update(ctx, rewrite); err != nil {
				if apperrors.Is(err, vaultDomain.ErrVaultItemNotFound) {
					return vaultDomain.ErrVaultItemNotOwned
				}
				return err
			}
		}
		return nil
	})

	return apperrors.Transient(err)
}

// NewRotationUseCase creates the credential rotation coordinator.
func NewRotationUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	vaultItemRepo VaultItemRepository,
	hasher hashing.PasswordHasher,
) RotationUseCase {
	return &rotationUseCase{
		txManager:     txManager,
		userRepo:      userRepo,
		vaultItemRepo: vaultItemRepo,
		hasher:        hasher,
	}
}
