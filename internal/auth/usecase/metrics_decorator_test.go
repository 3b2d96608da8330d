package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	"github.com/zkvault/zkvault/internal/auth/usecase"
	usecaseMocks "github.com/zkvault/zkvault/internal/auth/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics to avoid dependency issues.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestSessionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Login success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)
		session := &authDomain.Session{AccessToken: "a", RefreshToken: "r"}

		mockNext.On("Login", ctx, "alice@example.com", "hash").Return(session, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "login", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Login(ctx, "alice@example.com", "hash")
		assert.NoError(t, err)
		assert.Equal(t, session, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Refresh error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Refresh", ctx, "r").Return(nil, authDomain.ErrRefreshTokenNotFound).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "refresh", "rejected").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "refresh", mock.AnythingOfType("time.Duration"), "rejected").
			Return().
			Once()

		res, err := uc.Refresh(ctx, "r")
		assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Logout error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Logout", ctx, "r").Return(errors.New("db down")).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "logout", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "logout", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		assert.Error(t, uc.Logout(ctx, "r"))
		mockMetrics.AssertExpectations(t)
	})
}
