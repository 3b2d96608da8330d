// Package mocks provides mock implementations of the leak use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLeakUseCase is a mock implementation of LeakUseCase for testing.
type MockLeakUseCase struct {
	mock.Mock
}

// CheckEmail mocks the CheckEmail method.
func (m *MockLeakUseCase) CheckEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// CheckPassword mocks the CheckPassword method.
func (m *MockLeakUseCase) CheckPassword(ctx context.Context, sha1Hex string) (bool, error) {
	args := m.Called(ctx, sha1Hex)
	return args.Bool(0), args.Error(1)
}
