package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
	cryptoService "github.com/zkvault/zkvault/internal/crypto/service"
	databaseMocks "github.com/zkvault/zkvault/internal/database/mocks"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/hashing"
	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

var testLimits = Limits{MaxTTL: 7 * 24 * time.Hour, MaxAccesses: 100, MaxContentBytes: 1024}

func newTestSealer(t *testing.T) cryptoService.ContentSealer {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	sealer, err := cryptoService.NewContentSealer(cryptoService.NewAEADManager(), key, cryptoDomain.AESGCM)
	require.NoError(t, err)
	return sealer
}

func newTestPasswordHasher(t *testing.T) hashing.PasswordHasher {
	t.Helper()
	hasher, err := hashing.NewPasswordHasher()
	require.NoError(t, err)
	return hasher
}

func newMemorySecretUseCase(t *testing.T) (*secretUseCase, *memorySecretRepository) {
	t.Helper()
	repo := newMemorySecretRepository()
	uc := NewSecretUseCase(
		&serialTxManager{},
		repo,
		hashing.NewTokenGenerator(),
		newTestPasswordHasher(t),
		newTestSealer(t),
		testLimits,
	).(*secretUseCase)
	return uc, repo
}

func createTestSecret(
	t *testing.T,
	uc SecretUseCase,
	ownerID uuid.UUID,
	maxAccesses int,
	password string,
) *secretsDomain.CreatedSecret {
	t.Helper()
	created, err := uc.Create(context.Background(), ownerID, &secretsDomain.CreateSecretInput{
		Content:     "the launch code is 0000",
		MaxAccesses: maxAccesses,
		TTL:         time.Hour,
		Password:    password,
	})
	require.NoError(t, err)
	return created
}

func TestSecretUseCase_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		uc, repo := newMemorySecretUseCase(t)

		created := createTestSecret(t, uc, ownerID, 3, "")

		assert.NotEmpty(t, created.Token)
		secret := created.Secret
		assert.Equal(t, ownerID, secret.OwnerID)
		assert.Equal(t, hashing.NewTokenGenerator().DigestToken(created.Token), secret.TokenHash)
		assert.NotEqual(t, created.Token, secret.TokenHash)
		assert.Equal(t, 3, secret.MaxAccesses)
		assert.Equal(t, 3, secret.RemainingAccesses)
		assert.Equal(t, secret.CreatedAt.Add(time.Hour), secret.ExpiresAt)
		assert.False(t, secret.HasPassword())
		assert.NotContains(t, string(secret.Ciphertext), "launch code")
		assert.Equal(t, 1, repo.len())
	})

	t.Run("Success_WhitespacePasswordMeansNone", func(t *testing.T) {
		uc, _ := newMemorySecretUseCase(t)

		created := createTestSecret(t, uc, ownerID, 1, "   ")
		assert.False(t, created.Secret.HasPassword())
	})

	t.Run("Success_PasswordIsHashed", func(t *testing.T) {
		uc, _ := newMemorySecretUseCase(t)

		created := createTestSecret(t, uc, ownerID, 1, "hunter2")
		assert.True(t, created.Secret.HasPassword())
		assert.NotEqual(t, "hunter2", created.Secret.PasswordHash)
	})

	tests := []struct {
		name     string
		input    secretsDomain.CreateSecretInput
		expected error
	}{
		{"zero max accesses", secretsDomain.CreateSecretInput{Content: "c", MaxAccesses: 0, TTL: time.Hour},
			secretsDomain.ErrInvalidMaxAccesses},
		{"max accesses above limit", secretsDomain.CreateSecretInput{Content: "c", MaxAccesses: 101, TTL: time.Hour},
			secretsDomain.ErrInvalidMaxAccesses},
		{"zero ttl", secretsDomain.CreateSecretInput{Content: "c", MaxAccesses: 1},
			secretsDomain.ErrInvalidTTL},
		{"negative ttl", secretsDomain.CreateSecretInput{Content: "c", MaxAccesses: 1, TTL: -time.Second},
			secretsDomain.ErrInvalidTTL},
		{"ttl above limit", secretsDomain.CreateSecretInput{Content: "c", MaxAccesses: 1, TTL: 8 * 24 * time.Hour},
			secretsDomain.ErrInvalidTTL},
		{"content too large", secretsDomain.CreateSecretInput{
			Content: string(make([]byte, 1025)), MaxAccesses: 1, TTL: time.Hour,
		}, secretsDomain.ErrContentTooLarge},
	}
	for _, tt := range tests {
		t.Run("Error_"+tt.name, func(t *testing.T) {
			repo := &mockSecretRepository{}
			uc := NewSecretUseCase(
				&databaseMocks.MockTxManager{},
				repo,
				hashing.NewTokenGenerator(),
				newTestPasswordHasher(t),
				newTestSealer(t),
				testLimits,
			)

			input := tt.input
			_, err := uc.Create(ctx, ownerID, &input)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSecretUseCase_Access(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())

	t.Run("CountsDownThenRemovesRow", func(t *testing.T) {
		uc, repo := newMemorySecretUseCase(t)
		created := createTestSecret(t, uc, ownerID, 2, "")

		first, err := uc.Access(ctx, created.Token, "")
		require.NoError(t, err)
		assert.Equal(t, "the launch code is 0000", first.Content)
		assert.Equal(t, 1, first.RemainingAccesses)
		assert.Equal(t, created.Secret.ExpiresAt, first.ExpiresAt)

		last, err := uc.Access(ctx, created.Token, "")
		require.NoError(t, err)
		assert.Equal(t, 0, last.RemainingAccesses)
		assert.Equal(t, 0, repo.len())

		_, err = uc.Access(ctx, created.Token, "")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		uc, _ := newMemorySecretUseCase(t)

		_, err := uc.Access(ctx, "never-issued", "")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
	})

	t.Run("PasswordGate", func(t *testing.T) {
		uc, repo := newMemorySecretUseCase(t)
		created := createTestSecret(t, uc, ownerID, 1, "hunter2")

		_, err := uc.Access(ctx, created.Token, "")
		assert.ErrorIs(t, err, secretsDomain.ErrPasswordRequired)

		_, err = uc.Access(ctx, created.Token, "wrong")
		assert.ErrorIs(t, err, secretsDomain.ErrInvalidPassword)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

		stored, err := repo.GetByTokenHash(ctx, created.Secret.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.RemainingAccesses, "failed password checks must not consume accesses")

		accessed, err := uc.Access(ctx, created.Token, "hunter2")
		require.NoError(t, err)
		assert.Equal(t, 0, accessed.RemainingAccesses)
	})

	t.Run("ExpiredReportedBeforeRevoked", func(t *testing.T) {
		uc, _ := newMemorySecretUseCase(t)
		created := createTestSecret(t, uc, ownerID, 1, "hunter2")
		require.NoError(t, uc.Revoke(ctx, ownerID, created.Secret.ID))

		uc.now = func() time.Time { return created.Secret.ExpiresAt.Add(time.Second) }

		_, err := uc.Access(ctx, created.Token, "")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretExpired)
	})

	t.Run("RevokedReportedBeforePassword", func(t *testing.T) {
		uc, _ := newMemorySecretUseCase(t)
		created := createTestSecret(t, uc, ownerID, 1, "hunter2")
		require.NoError(t, uc.Revoke(ctx, ownerID, created.Secret.ID))

		_, err := uc.Access(ctx, created.Token, "wrong")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretRevoked)
		assert.ErrorIs(t, err, apperrors.ErrGone)
	})

	t.Run("TamperedCiphertextDoesNotConsume", func(t *testing.T) {
		uc, repo := newMemorySecretUseCase(t)
		created := createTestSecret(t, uc, ownerID, 2, "")

		repo.mu.Lock()
		stored := repo.secrets[created.Secret.TokenHash]
		stored.Ciphertext = append([]byte(nil), stored.Ciphertext...)
		stored.Ciphertext[0] ^= 0xff
		repo.secrets[created.Secret.TokenHash] = stored
		repo.mu.Unlock()

		_, err := uc.Access(ctx, created.Token, "")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.NotErrorIs(t, err, apperrors.ErrTransient)

		after, err := repo.GetByTokenHash(ctx, created.Secret.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, 2, after.RemainingAccesses)
	})
}

func TestSecretUseCase_Access_ConsumePhase(t *testing.T) {
	ctx := context.Background()
	tokens := hashing.NewTokenGenerator()
	digest := tokens.DigestToken("raw")
	active := &secretsDomain.Secret{
		ID:                uuid.Must(uuid.NewV7()),
		TokenHash:         digest,
		RemainingAccesses: 1,
		ExpiresAt:         time.Now().Add(time.Hour),
	}

	newUseCase := func(t *testing.T) (SecretUseCase, *mockSecretRepository, *databaseMocks.MockTxManager) {
		repo := &mockSecretRepository{}
		txManager := &databaseMocks.MockTxManager{}
		uc := NewSecretUseCase(txManager, repo, tokens, newTestPasswordHasher(t), newTestSealer(t), testLimits)
		return uc, repo, txManager
	}

	t.Run("RowVanishedIsExhausted", func(t *testing.T) {
		uc, repo, txManager := newUseCase(t)
		repo.On("GetByTokenHash", ctx, digest).Return(active, nil).Once()
		txManager.On("WithTx", ctx).Return(nil).Once()
		repo.On("GetByTokenHashForUpdate", ctx, digest).Return(nil, secretsDomain.ErrSecretNotFound).Once()

		_, err := uc.Access(ctx, "raw", "")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretExhausted)
		assert.NotErrorIs(t, err, apperrors.ErrTransient)
	})

	t.Run("ExhaustedUnderLock", func(t *testing.T) {
		uc, repo, txManager := newUseCase(t)
		drained := *active
		drained.RemainingAccesses = 0
		repo.On("GetByTokenHash", ctx, digest).Return(active, nil).Once()
		txManager.On("WithTx", ctx).Return(nil).Once()
		repo.On("GetByTokenHashForUpdate", ctx, digest).Return(&drained, nil).Once()

		_, err := uc.Access(ctx, "raw", "")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretExhausted)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("StorageFailureIsTransient", func(t *testing.T) {
		uc, repo, txManager := newUseCase(t)
		repo.On("GetByTokenHash", ctx, digest).Return(active, nil).Once()
		txManager.On("WithTx", ctx).Return(nil).Once()
		repo.On("GetByTokenHashForUpdate", ctx, digest).Return(nil, errors.New("deadlock detected")).Once()

		_, err := uc.Access(ctx, "raw", "")
		assert.ErrorIs(t, err, apperrors.ErrTransient)
	})
}

func TestSecretUseCase_ConcurrentAccess(t *testing.T) {
	for name, maxAccesses := range map[string]int{"SingleRead": 1, "ThreeReads": 3} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			uc, repo := newMemorySecretUseCase(t)
			created := createTestSecret(t, uc, uuid.Must(uuid.NewV7()), maxAccesses, "")

			const callers = 8
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				remaining []int
				failures  []error
			)
			for range callers {
				wg.Go(func() {
					accessed, err := uc.Access(ctx, created.Token, "")
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						failures = append(failures, err)
						return
					}
					remaining = append(remaining, accessed.RemainingAccesses)
				})
			}
			wg.Wait()

			assert.Len(t, remaining, maxAccesses)
			for i := range maxAccesses {
				assert.Contains(t, remaining, i)
			}
			for _, err := range failures {
				assert.True(t,
					errors.Is(err, secretsDomain.ErrSecretExhausted) || errors.Is(err, secretsDomain.ErrSecretNotFound),
					"unexpected error: %v", err)
			}
			assert.Equal(t, 0, repo.len())
		})
	}
}

func TestSecretUseCase_Revoke(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())

	t.Run("OnlyOwner", func(t *testing.T) {
		uc, _ := newMemorySecretUseCase(t)
		created := createTestSecret(t, uc, ownerID, 1, "")

		err := uc.Revoke(ctx, uuid.Must(uuid.NewV7()), created.Secret.ID)
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotOwned)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		accessed, err := uc.Access(ctx, created.Token, "")
		require.NoError(t, err)
		assert.Equal(t, 0, accessed.RemainingAccesses)
	})

	t.Run("Idempotent", func(t *testing.T) {
		uc, repo := newMemorySecretUseCase(t)
		created := createTestSecret(t, uc, ownerID, 1, "")

		require.NoError(t, uc.Revoke(ctx, ownerID, created.Secret.ID))
		require.NoError(t, uc.Revoke(ctx, ownerID, created.Secret.ID))

		stored, err := repo.GetByID(ctx, created.Secret.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsRevoked)
	})

	t.Run("NotFound", func(t *testing.T) {
		uc, _ := newMemorySecretUseCase(t)

		err := uc.Revoke(ctx, ownerID, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
	})
}

func TestSecretUseCase_ListOwned(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMemorySecretUseCase(t)
	ownerID := uuid.Must(uuid.NewV7())

	createTestSecret(t, uc, ownerID, 1, "")
	createTestSecret(t, uc, ownerID, 2, "pw")
	createTestSecret(t, uc, uuid.Must(uuid.NewV7()), 1, "")

	secrets, err := uc.ListOwned(ctx, ownerID, 0, 50)
	require.NoError(t, err)
	assert.Len(t, secrets, 2)
}

func TestSecretUseCase_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	uc, repo := newMemorySecretUseCase(t)
	ownerID := uuid.Must(uuid.NewV7())

	createTestSecret(t, uc, ownerID, 1, "")
	revoked := createTestSecret(t, uc, ownerID, 1, "")
	require.NoError(t, uc.Revoke(ctx, ownerID, revoked.Secret.ID))

	count, err := uc.CleanupExpired(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "revoked secrets that have not expired are kept")

	uc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }

	count, err = uc.CleanupExpired(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 2, repo.len())

	count, err = uc.CleanupExpired(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 0, repo.len())
}
