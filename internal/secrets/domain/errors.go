package domain

import (
	"github.com/zkvault/zkvault/internal/errors"
)

// Secret-specific error definitions. The coded errors expose a stable code to
// API clients so the terminal states can be told apart.
var (
	// ErrSecretNotFound indicates no secret matches the token or id.
	ErrSecretNotFound = errors.Coded(errors.ErrNotFound, "secret_not_found", "Secret not found")

	// ErrSecretExpired indicates the secret is past its expiry time.
	ErrSecretExpired = errors.Coded(errors.ErrGone, "secret_expired", "This secret has expired")

	// ErrSecretRevoked indicates the owner revoked the secret.
	ErrSecretRevoked = errors.Coded(errors.ErrGone, "secret_revoked", "This secret has been revoked")

	// ErrSecretExhausted indicates no accesses remain.
	ErrSecretExhausted = errors.Coded(
		errors.ErrGone,
		"secret_exhausted",
		"This secret has been accessed the maximum number of times",
	)

	// ErrPasswordRequired indicates a password protected secret was accessed without one.
	ErrPasswordRequired = errors.Coded(errors.ErrUnauthorized, "password_required", "Password required")

	// ErrInvalidPassword indicates the supplied password did not verify.
	ErrInvalidPassword = errors.Coded(errors.ErrUnauthorized, "invalid_password", "Invalid password")

	// ErrSecretNotOwned indicates a revoke by someone other than the creator.
	ErrSecretNotOwned = errors.Coded(
		errors.ErrForbidden,
		"secret_not_owned",
		"You do not have permission to revoke this secret",
	)

	// ErrInvalidMaxAccesses indicates a max accesses value below one or above the configured ceiling.
	ErrInvalidMaxAccesses = errors.Wrap(errors.ErrInvalidInput, "max_accesses is out of range")

	// ErrInvalidTTL indicates a non-positive TTL or one above the configured ceiling.
	ErrInvalidTTL = errors.Wrap(errors.ErrInvalidInput, "ttl_seconds is out of range")

	// ErrContentTooLarge indicates content above the configured size limit.
	ErrContentTooLarge = errors.Wrap(errors.ErrInvalidInput, "content is too large")
)
