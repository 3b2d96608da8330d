// Package mocks provides mock implementations of the vault use case for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

// MockVaultItemUseCase is a mock implementation of VaultItemUseCase for testing.
type MockVaultItemUseCase struct {
	mock.Mock
}

// List mocks the List method.
func (m *MockVaultItemUseCase) List(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.VaultItem, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.VaultItem), args.Error(1)
}

// Create mocks the Create method.
func (m *MockVaultItemUseCase) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	site, encryptedPassword string,
) (*vaultDomain.VaultItem, error) {
	args := m.Called(ctx, ownerID, site, encryptedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultItem), args.Error(1)
}

// Update mocks the Update method.
func (m *MockVaultItemUseCase) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	site, encryptedPassword string,
) (*vaultDomain.VaultItem, error) {
	args := m.Called(ctx, ownerID, id, site, encryptedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultItem), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockVaultItemUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
