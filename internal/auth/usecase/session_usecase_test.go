package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	authService "github.com/zkvault/zkvault/internal/auth/service"
	usecaseMocks "github.com/zkvault/zkvault/internal/auth/usecase/mocks"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

func TestSessionUseCase_Login(t *testing.T) {
	ctx := context.Background()
	accessTokens, err := authService.NewAccessTokenService("0123456789abcdef0123456789abcdef", 15*time.Minute)
	require.NoError(t, err)
	user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "alice@example.com"}

	t.Run("Success", func(t *testing.T) {
		users := &mockUserAuthenticator{}
		ledger := &usecaseMocks.MockRefreshTokenLedger{}
		uc := NewSessionUseCase(users, ledger, accessTokens)

		users.On("Authenticate", ctx, "alice@example.com", "hash").Return(user, nil).Once()
		ledger.On("Issue", ctx, user.ID).Return("refresh-raw", nil).Once()

		session, err := uc.Login(ctx, "alice@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.UserID)
		assert.Equal(t, "refresh-raw", session.RefreshToken)

		subject, err := accessTokens.Parse(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, subject)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		users := &mockUserAuthenticator{}
		ledger := &usecaseMocks.MockRefreshTokenLedger{}
		uc := NewSessionUseCase(users, ledger, accessTokens)

		users.On("Authenticate", ctx, "alice@example.com", "bad").
			Return(nil, userDomain.ErrInvalidCredentials).
			Once()

		_, err := uc.Login(ctx, "alice@example.com", "bad")
		assert.ErrorIs(t, err, userDomain.ErrInvalidCredentials)
		ledger.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})
}

func TestSessionUseCase_Refresh(t *testing.T) {
	ctx := context.Background()
	accessTokens, err := authService.NewAccessTokenService("0123456789abcdef0123456789abcdef", 15*time.Minute)
	require.NoError(t, err)
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		ledger := &usecaseMocks.MockRefreshTokenLedger{}
		uc := NewSessionUseCase(&mockUserAuthenticator{}, ledger, accessTokens)

		ledger.On("RotateOnUse", ctx, "old").Return("new", userID, nil).Once()

		session, err := uc.Refresh(ctx, "old")
		require.NoError(t, err)
		assert.Equal(t, "new", session.RefreshToken)
		assert.Equal(t, userID, session.UserID)
		assert.NotEmpty(t, session.AccessToken)
	})

	t.Run("NotFound", func(t *testing.T) {
		ledger := &usecaseMocks.MockRefreshTokenLedger{}
		uc := NewSessionUseCase(&mockUserAuthenticator{}, ledger, accessTokens)

		ledger.On("RotateOnUse", ctx, "old").Return("", uuid.Nil, authDomain.ErrRefreshTokenNotFound).Once()

		session, err := uc.Refresh(ctx, "old")
		assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
		assert.Nil(t, session)
	})
}

func TestSessionUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	ledger := &usecaseMocks.MockRefreshTokenLedger{}
	uc := NewSessionUseCase(&mockUserAuthenticator{}, ledger, nil)

	ledger.On("Revoke", ctx, "a").Return(nil).Once()
	ledger.On("Revoke", ctx, "b").Return(errors.New("db down")).Once()

	assert.NoError(t, uc.Logout(ctx, "a"))
	assert.Error(t, uc.Logout(ctx, "b"))
}
