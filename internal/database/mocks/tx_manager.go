// Package mocks provides a TxManager test double.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager runs the transaction function inline. The error configured with
// Return is reported as a commit failure when the function itself succeeds.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks database.TxManager.WithTx.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := fn(ctx); err != nil {
		return err
	}
	return args.Error(0)
}
