package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

// mockSecretRepository is a mock implementation of SecretRepository.
type mockSecretRepository struct {
	mock.Mock
}

func (m *mockSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

func (m *mockSecretRepository) GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *mockSecretRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *mockSecretRepository) GetByTokenHashForUpdate(
	ctx context.Context,
	tokenHash string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *mockSecretRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

func (m *mockSecretRepository) DecrementRemaining(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSecretRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSecretRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// serialTxManager runs one transaction at a time, standing in for the row lock
// that SELECT ... FOR UPDATE takes on a single secret.
type serialTxManager struct {
	mu sync.Mutex
}

func (s *serialTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

// memorySecretRepository is a map-backed SecretRepository keyed by token digest.
type memorySecretRepository struct {
	mu      sync.Mutex
	secrets map[string]secretsDomain.Secret
}

func newMemorySecretRepository() *memorySecretRepository {
	return &memorySecretRepository{secrets: make(map[string]secretsDomain.Secret)}
}

func (r *memorySecretRepository) Create(_ context.Context, secret *secretsDomain.Secret) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secrets[secret.TokenHash] = *secret
	return nil
}

func (r *memorySecretRepository) find(match func(secretsDomain.Secret) bool) (*secretsDomain.Secret, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, secret := range r.secrets {
		if match(secret) {
			copied := secret
			return &copied, nil
		}
	}
	return nil, secretsDomain.ErrSecretNotFound
}

func (r *memorySecretRepository) GetByID(_ context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	return r.find(func(s secretsDomain.Secret) bool { return s.ID == id })
}

func (r *memorySecretRepository) GetByTokenHash(_ context.Context, tokenHash string) (*secretsDomain.Secret, error) {
	return r.find(func(s secretsDomain.Secret) bool { return s.TokenHash == tokenHash })
}

func (r *memorySecretRepository) GetByTokenHashForUpdate(
	ctx context.Context,
	tokenHash string,
) (*secretsDomain.Secret, error) {
	return r.GetByTokenHash(ctx, tokenHash)
}

func (r *memorySecretRepository) ListByOwner(
	_ context.Context,
	ownerID uuid.UUID,
	_, _ int,
) ([]*secretsDomain.Secret, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	secrets := make([]*secretsDomain.Secret, 0)
	for _, secret := range r.secrets {
		if secret.OwnerID == ownerID {
			copied := secret
			secrets = append(secrets, &copied)
		}
	}
	return secrets, nil
}

func (r *memorySecretRepository) update(id uuid.UUID, apply func(secretsDomain.Secret) (secretsDomain.Secret, bool)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, secret := range r.secrets {
		if secret.ID != id {
			continue
		}
		updated, keep := apply(secret)
		if keep {
			r.secrets[key] = updated
		} else {
			delete(r.secrets, key)
		}
		return nil
	}
	return secretsDomain.ErrSecretNotFound
}

func (r *memorySecretRepository) DecrementRemaining(_ context.Context, id uuid.UUID) error {
	return r.update(id, func(s secretsDomain.Secret) (secretsDomain.Secret, bool) {
		s.RemainingAccesses--
		return s, true
	})
}

func (r *memorySecretRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.update(id, func(s secretsDomain.Secret) (secretsDomain.Secret, bool) { return s, false })
}

func (r *memorySecretRepository) Revoke(_ context.Context, id uuid.UUID) error {
	return r.update(id, func(s secretsDomain.Secret) (secretsDomain.Secret, bool) {
		s.IsRevoked = true
		return s, true
	})
}

func (r *memorySecretRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key, secret := range r.secrets {
		if !secret.ExpiresAt.After(now) {
			delete(r.secrets, key)
			count++
		}
	}
	return count, nil
}

func (r *memorySecretRepository) CountExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, secret := range r.secrets {
		if !secret.ExpiresAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (r *memorySecretRepository) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.secrets)
}
