package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	authService "github.com/zkvault/zkvault/internal/auth/service"
)

type sessionUseCase struct {
	users        UserAuthenticator
	ledger       RefreshTokenLedger
	accessTokens authService.AccessTokenService
}

// Login verifies the credentials and opens a session with a fresh token pair.
func (s *sessionUseCase) Login(ctx context.Context, email, authHash string) (*authDomain.Session, error) {
	user, err := s.users.Authenticate(ctx, email, authHash)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.ledger.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.newSession(user.ID, refreshToken)
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is consumed.
func (s *sessionUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.Session, error) {
	newRefreshToken, userID, err := s.ledger.RotateOnUse(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.newSession(userID, newRefreshToken)
}

// Logout revokes the refresh token.
func (s *sessionUseCase) Logout(ctx context.Context, refreshToken string) error {
	return s.ledger.Revoke(ctx, refreshToken)
}

func (s *sessionUseCase) newSession(userID uuid.UUID, refreshToken string) (*authDomain.Session, error) {
	accessToken, expiresAt, err := s.accessTokens.Issue(userID)
	if err != nil {
		return nil, err
	}
	return &authDomain.Session{
		UserID:               userID,
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
		RefreshToken:         refreshToken,
	}, nil
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	users UserAuthenticator,
	ledger RefreshTokenLedger,
	accessTokens authService.AccessTokenService,
) SessionUseCase {
	return &sessionUseCase{
		users:        users,
		ledger:       ledger,
		accessTokens: accessTokens,
	}
}
