package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
	cryptoService "github.com/zkvault/zkvault/internal/crypto/service"
	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/hashing"
	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

type secretUseCase struct {
	txManager  database.TxManager
	secretRepo SecretRepository
	tokens     hashing.TokenGenerator
	passwords  hashing.PasswordHasher
	sealer     cryptoService.ContentSealer
	limits     Limits
	now        func() time.Time
}

func (s *secretUseCase) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input *secretsDomain.CreateSecretInput,
) (*secretsDomain.CreatedSecret, error) {
	if err := s.checkLimits(input); err != nil {
		return nil, err
	}

	token, tokenHash, err := s.tokens.GenerateToken()
	if err != nil {
		return nil, err
	}

	var passwordHash string
	if password := strings.TrimSpace(input.Password); password != "" {
		if passwordHash, err = s.passwords.Hash(password); err != nil {
			return nil, apperrors.Wrap(err, "failed to hash secret password")
		}
	}

	now := s.now()
	secret := &secretsDomain.Secret{
		ID:                uuid.Must(uuid.NewV7()),
		OwnerID:           ownerID,
		TokenHash:         tokenHash,
		MaxAccesses:       input.MaxAccesses,
		RemainingAccesses: input.MaxAccesses,
		PasswordHash:      passwordHash,
		CreatedAt:         now,
		ExpiresAt:         now.Add(input.TTL),
	}

	content := []byte(input.Content)
	secret.Ciphertext, secret.Nonce, err = s.sealer.Seal(content, secret.ID[:])
	cryptoDomain.Zero(content)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to seal secret content")
	}

	if err := s.secretRepo.Create(ctx, secret); err != nil {
		return nil, err
	}

	return &secretsDomain.CreatedSecret{Secret: secret, Token: token}, nil
}

func (s *secretUseCase) checkLimits(input *secretsDomain.CreateSecretInput) error {
	if input.MaxAccesses < 1 || (s.limits.MaxAccesses > 0 && input.MaxAccesses > s.limits.MaxAccesses) {
		return secretsDomain.ErrInvalidMaxAccesses
	}
	if input.TTL <= 0 || (s.limits.MaxTTL > 0 && input.TTL > s.limits.MaxTTL) {
		return secretsDomain.ErrInvalidTTL
	}
	if s.limits.MaxContentBytes > 0 && len(input.Content) > s.limits.MaxContentBytes {
		return secretsDomain.ErrContentTooLarge
	}
	return nil
}

func (s *secretUseCase) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	return s.secretRepo.ListByOwner(ctx, ownerID, offset, limit)
}

// Access runs in two phases. The state check and the password verification
// happen without a lock so a slow hash never holds a row lock. The consume phase
// locks the row, re-checks the state and decrements or deletes it.
func (s *secretUseCase) Access(
	ctx context.Context,
	token, password string,
) (*secretsDomain.AccessedSecret, error) {
	tokenHash := s.tokens.DigestToken(token)

	secret, err := s.secretRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if err := secret.CheckAccessible(s.now()); err != nil {
		return nil, err
	}
	if secret.HasPassword() {
		password = strings.TrimSpace(password)
		if password == "" {
			return nil, secretsDomain.ErrPasswordRequired
		}
		if !s.passwords.Verify(password, secret.PasswordHash) {
			return nil, secretsDomain.ErrInvalidPassword
		}
	}

	var accessed *secretsDomain.AccessedSecret
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		locked, err := s.secretRepo.GetByTokenHashForUpdate(ctx, tokenHash)
		if err != nil {
			// Deleted by a concurrent access that took the last read.
			if apperrors.Is(err, secretsDomain.ErrSecretNotFound) {
				return secretsDomain.ErrSecretExhausted
			}
			return err
		}
		if err := locked.CheckAccessible(s.now()); err != nil {
			return err
		}

		content, err := s.sealer.Open(locked.Ciphertext, locked.Nonce, locked.ID[:])
		if err != nil {
			return err
		}

		remaining := locked.RemainingAccesses - 1
		if remaining == 0 {
			err = s.secretRepo.Delete(ctx, locked.ID)
		} else {
			err = s.secretRepo.DecrementRemaining(ctx, locked.ID)
		}
		if err != nil {
			cryptoDomain.Zero(content)
			return err
		}

		accessed = &secretsDomain.AccessedSecret{
			Content:           string(content),
			RemainingAccesses: remaining,
			ExpiresAt:         locked.ExpiresAt,
		}
		cryptoDomain.Zero(content)
		return nil
	})
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) {
			return nil, err
		}
		return nil, apperrors.Transient(err)
	}

	return accessed, nil
}

func (s *secretUseCase) Revoke(ctx context.Context, ownerID, id uuid.UUID) error {
	secret, err := s.secretRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if secret.OwnerID != ownerID {
		return secretsDomain.ErrSecretNotOwned
	}
	if secret.IsRevoked {
		return nil
	}
	return s.secretRepo.Revoke(ctx, id)
}

func (s *secretUseCase) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	now := s.now()
	if dryRun {
		return s.secretRepo.CountExpired(ctx, now)
	}
	return s.secretRepo.DeleteExpired(ctx, now)
}

// NewSecretUseCase creates a new SecretUseCase.
func NewSecretUseCase(
	txManager database.TxManager,
	secretRepo SecretRepository,
	tokens hashing.TokenGenerator,
	passwords hashing.PasswordHasher,
	sealer cryptoService.ContentSealer,
	limits Limits,
) SecretUseCase {
	return &secretUseCase{
		txManager:  txManager,
		secretRepo: secretRepo,
		tokens:     tokens,
		passwords:  passwords,
		sealer:     sealer,
		limits:     limits,
		now:        func() time.Time { return time.Now().UTC() },
	}
}
