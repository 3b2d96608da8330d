// Package mocks provides mock implementations of the auth use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
)

// MockSessionUseCase is a mock implementation of SessionUseCase for testing.
type MockSessionUseCase struct {
	mock.Mock
}

// Login mocks the Login method.
func (m *MockSessionUseCase) Login(ctx context.Context, email, authHash string) (*authDomain.Session, error) {
	args := m.Called(ctx, email, authHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Refresh mocks the Refresh method.
func (m *MockSessionUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Logout mocks the Logout method.
func (m *MockSessionUseCase) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// MockRefreshTokenLedger is a mock implementation of RefreshTokenLedger for testing.
type MockRefreshTokenLedger struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockRefreshTokenLedger) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// Validate mocks the Validate method.
func (m *MockRefreshTokenLedger) Validate(ctx context.Context, rawToken string) (uuid.UUID, error) {
	args := m.Called(ctx, rawToken)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// RotateOnUse mocks the RotateOnUse method.
func (m *MockRefreshTokenLedger) RotateOnUse(ctx context.Context, rawToken string) (string, uuid.UUID, error) {
	args := m.Called(ctx, rawToken)
	return args.String(0), args.Get(1).(uuid.UUID), args.Error(2)
}

// Revoke mocks the Revoke method.
func (m *MockRefreshTokenLedger) Revoke(ctx context.Context, rawToken string) error {
	args := m.Called(ctx, rawToken)
	return args.Error(0)
}

// CleanupExpired mocks the CleanupExpired method.
func (m *MockRefreshTokenLedger) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	args := m.Called(ctx, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
