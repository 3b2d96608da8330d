// Package mocks provides mock implementations of the secret use case for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

// MockSecretUseCase is a mock implementation of SecretUseCase for testing.
type MockSecretUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockSecretUseCase) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input *secretsDomain.CreateSecretInput,
) (*secretsDomain.CreatedSecret, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.CreatedSecret), args.Error(1)
}

// ListOwned mocks the ListOwned method.
func (m *MockSecretUseCase) ListOwned(
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

// Access mocks the Access method.
func (m *MockSecretUseCase) Access(
	ctx context.Context,
	token, password string,
) (*secretsDomain.AccessedSecret, error) {
	args := m.Called(ctx, token, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.AccessedSecret), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockSecretUseCase) Revoke(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// CleanupExpired mocks the CleanupExpired method.
func (m *MockSecretUseCase) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	args := m.Called(ctx, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
