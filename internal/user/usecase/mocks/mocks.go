// Package mocks provides mock implementations of the account use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// MockUserUseCase is a mock implementation of UserUseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockUserUseCase) Register(
	ctx context.Context,
	input *userDomain.RegisterInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockUserUseCase) Authenticate(ctx context.Context, email, authHash string) (*userDomain.User, error) {
	args := m.Called(ctx, email, authHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// GetByID mocks the GetByID method.
func (m *MockUserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// GetVaultKeyMaterial mocks the GetVaultKeyMaterial method.
func (m *MockUserUseCase) GetVaultKeyMaterial(
	ctx context.Context,
	userID uuid.UUID,
) (*userDomain.VaultKeyMaterial, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.VaultKeyMaterial), args.Error(1)
}

// DeleteAccount mocks the DeleteAccount method.
func (m *MockUserUseCase) DeleteAccount(ctx context.Context, userID uuid.UUID, authHash string) error {
	args := m.Called(ctx, userID, authHash)
	return args.Error(0)
}

// MockRotationUseCase is a mock implementation of RotationUseCase for testing.
type MockRotationUseCase struct {
	mock.Mock
}

// RotateCredentials mocks the RotateCredentials method.
func (m *MockRotationUseCase) RotateCredentials(
	ctx context.Context,
	userID uuid.UUID,
	input *userDomain.RotateCredentialsInput,
) error {
	args := m.Called(ctx, userID, input)
	return args.Error(0)
}
