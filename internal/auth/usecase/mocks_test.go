package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRefreshTokenRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserAuthenticator struct {
	mock.Mock
}

func (m *mockUserAuthenticator) Authenticate(
	ctx context.Context,
	email, authHash string,
) (*userDomain.User, error) {
	args := m.Called(ctx, email, authHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// inlineTxManager runs the function without a transaction.
type inlineTxManager struct{}

func (inlineTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memoryRefreshTokenRepository is a map-backed RefreshTokenRepository whose
// delete is atomic, like a DELETE statement under row locking.
type memoryRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]authDomain.RefreshToken
}

func newMemoryRefreshTokenRepository() *memoryRefreshTokenRepository {
	return &memoryRefreshTokenRepository{tokens: make(map[string]authDomain.RefreshToken)}
}

func (r *memoryRefreshTokenRepository) Create(_ context.Context, token *authDomain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.TokenHash] = *token
	return nil
}

func (r *memoryRefreshTokenRepository) GetByTokenHash(
	_ context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, authDomain.ErrRefreshTokenNotFound
	}
	return &token, nil
}

func (r *memoryRefreshTokenRepository) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[tokenHash]; !ok {
		return authDomain.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenHash)
	return nil
}

func (r *memoryRefreshTokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for hash, token := range r.tokens {
		if !token.IsUsable(now) {
			delete(r.tokens, hash)
			count++
		}
	}
	return count, nil
}

func (r *memoryRefreshTokenRepository) CountExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, token := range r.tokens {
		if !token.IsUsable(now) {
			count++
		}
	}
	return count, nil
}

func (r *memoryRefreshTokenRepository) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
