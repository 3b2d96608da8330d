package domain

import (
	"github.com/zkvault/zkvault/internal/errors"
)

// Session errors.
var (
	// ErrRefreshTokenNotFound covers unknown, expired, revoked and already consumed refresh tokens.
	ErrRefreshTokenNotFound = errors.Wrap(errors.ErrUnauthorized, "refresh token not found")

	// ErrWeakAccessTokenSecret indicates an access token signing secret shorter than
	// MinAccessTokenSecretLength bytes.
	ErrWeakAccessTokenSecret = errors.Wrap(errors.ErrInvalidInput, "access token secret too short")

	// ErrInvalidAccessToken indicates a malformed, expired or wrongly signed access token.
	ErrInvalidAccessToken = errors.Wrap(errors.ErrUnauthorized, "invalid access token")
)
