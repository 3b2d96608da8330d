package dto

import (
	"time"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
)

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
}

// MapSessionToResponse converts a session into its API representation.
func MapSessionToResponse(session *authDomain.Session) SessionResponse {
	return SessionResponse{
		AccessToken:  session.AccessToken,
		TokenType:    authDomain.TokenTypeBearer,
		ExpiresAt:    session.AccessTokenExpiresAt,
		RefreshToken: session.RefreshToken,
	}
}
