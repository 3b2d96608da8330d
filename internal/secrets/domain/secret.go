// Package domain defines the shared secret entity and its lifecycle.
//
// A secret is reachable only through an unguessable token; the store keeps a
// digest of that token, never the token itself. Content is sealed at rest and
// opened only for a successful access. Each access decrements RemainingAccesses
// and the row is removed when it reaches zero.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Secret represents a shared secret owned by the user who created it.
type Secret struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	// TokenHash is the hex SHA-256 digest of the access token.
	TokenHash string
	// Ciphertext and Nonce hold the sealed content. The AAD is the secret ID.
	Ciphertext []byte
	Nonce      []byte
	// MaxAccesses is the access ceiling chosen at creation.
	MaxAccesses int
	// RemainingAccesses never increases.
	RemainingAccesses int
	// PasswordHash is empty when the secret is not password protected.
	PasswordHash string
	// IsRevoked only ever goes from false to true.
	IsRevoked bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// HasPassword reports whether access requires a password.
func (s *Secret) HasPassword() bool {
	return s.PasswordHash != ""
}

// CheckAccessible returns the terminal state that prevents an access, checked in
// the order expired, revoked, exhausted. A secret past expiry reports expired even
// when it was also revoked.
func (s *Secret) CheckAccessible(now time.Time) error {
	switch {
	case !now.Before(s.ExpiresAt):
		return ErrSecretExpired
	case s.IsRevoked:
		return ErrSecretRevoked
	case s.RemainingAccesses <= 0:
		return ErrSecretExhausted
	default:
		return nil
	}
}

// CreateSecretInput holds the data needed to create a secret.
type CreateSecretInput struct {
	Content     string
	MaxAccesses int
	TTL         time.Duration
	// Password is optional; blank or whitespace-only means no password.
	Password string
}

// CreatedSecret is returned once at creation. Token is the only copy of the
// access capability.
type CreatedSecret struct {
	Secret *Secret
	Token  string
}

// AccessedSecret is the result of a successful access.
type AccessedSecret struct {
	Content string
	// RemainingAccesses is the count after this access; zero means it was the last one.
	RemainingAccesses int
	ExpiresAt         time.Time
}
