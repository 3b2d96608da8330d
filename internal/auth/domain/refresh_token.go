package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a ledger record. The raw token is never stored, only its digest.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	Revoked   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsUsable reports whether the token may still be presented at now.
func (t *RefreshToken) IsUsable(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// Session is the credential pair returned by login and refresh.
type Session struct {
	UserID               uuid.UUID
	AccessToken          string
	AccessTokenExpiresAt time.Time
	RefreshToken         string
}
