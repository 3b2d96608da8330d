// Package mocks provides mock implementations for testing the auth middleware.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// MockAccessTokenService is a mock implementation of AccessTokenService for testing.
type MockAccessTokenService struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockAccessTokenService) Issue(userID uuid.UUID) (string, time.Time, error) {
	args := m.Called(userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// Parse mocks the Parse method.
func (m *MockAccessTokenService) Parse(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockUserLoader is a mock implementation of UserLoader for testing.
type MockUserLoader struct {
	mock.Mock
}

// GetByID mocks the GetByID method.
func (m *MockUserLoader) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}
