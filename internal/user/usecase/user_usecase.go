package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/hashing"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// timingGuardValue is hashed once at startup. Logins for unknown emails verify
// against its digest so they cost the same as logins for known ones.
const timingGuardValue = "zkvault-timing-guard"

type userUseCase struct {
	userRepo    UserRepository
	hasher      hashing.PasswordHasher
	guardDigest string
}

func (u *userUseCase) Register(ctx context.Context, input *userDomain.RegisterInput) (*userDomain.User, error) {
	digest, err := u.hasher.Hash(input.AuthHash)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:             uuid.Must(uuid.NewV7()),
		Email:          strings.TrimSpace(input.Email),
		AuthHashDigest: digest,
		VaultKeyBlob:   input.VaultKeyBlob,
		VaultKeyIV:     input.VaultKeyIV,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUseCase) Authenticate(ctx context.Context, email, authHash string) (*userDomain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			u.hasher.Verify(authHash, u.guardDigest)
			return nil, userDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.hasher.Verify(authHash, user.AuthHashDigest) {
		return nil, userDomain.ErrInvalidCredentials
	}
	return user, nil
}

func (u *userUseCase) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *userUseCase) GetVaultKeyMaterial(
	ctx context.Context,
	userID uuid.UUID,
) (*userDomain.VaultKeyMaterial, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &userDomain.VaultKeyMaterial{
		VaultKeyBlob: user.VaultKeyBlob,
		VaultKeyIV:   user.VaultKeyIV,
	}, nil
}

func (u *userUseCase) DeleteAccount(ctx context.Context, userID uuid.UUID, authHash string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.hasher.Verify(authHash, user.AuthHashDigest) {
		return userDomain.ErrIncorrectAuthHash
	}
	return u.userRepo.Delete(ctx, userID)
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, hasher hashing.PasswordHasher) (UserUseCase, error) {
	guardDigest, err := hasher.Hash(timingGuardValue)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to prepare timing guard digest")
	}

	return &userUseCase{
		userRepo:    userRepo,
		hasher:      hasher,
		guardDigest: guardDigest,
	}, nil
}
