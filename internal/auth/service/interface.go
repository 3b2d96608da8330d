// Package service provides the signed access tokens that accompany every refresh token.
package service

import (
	"time"

	"github.com/google/uuid"
)

// AccessTokenService issues and verifies short-lived stateless access tokens.
type AccessTokenService interface {
	// Issue signs a token for userID and returns it with its expiry.
	Issue(userID uuid.UUID) (token string, expiresAt time.Time, err error)

	// Parse verifies signature and expiry and returns the subject.
	// Any failure is reported as ErrInvalidAccessToken.
	Parse(token string) (uuid.UUID, error)
}
