// Package domain defines the user credential entity and its errors.
//
// A user is identified by email and authenticated by an auth hash computed on the
// client. Only a salted digest of that value is stored. The vault key blob and its
// IV are client-encrypted and always change together.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/errors"
	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

// User represents a registered account.
type User struct {
	ID             uuid.UUID
	Email          string
	AuthHashDigest string
	VaultKeyBlob   string
	VaultKeyIV     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// VaultKeyMaterial is the encrypted vault key handed back to the client.
type VaultKeyMaterial struct {
	VaultKeyBlob string
	VaultKeyIV   string
}

// RegisterInput contains the data supplied at registration.
type RegisterInput struct {
	Email        string
	AuthHash     string
	VaultKeyBlob string
	VaultKeyIV   string
}

// RotateCredentialsInput replaces the auth hash and vault key and carries every
// vault item re-encrypted under the new key.
type RotateCredentialsInput struct {
	CurrentAuthHash string
	NewAuthHash     string
	NewVaultKeyBlob string
	NewVaultKeyIV   string
	Items           []*vaultDomain.VaultItem
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials is returned by login for both unknown emails and wrong auth hashes.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "incorrect email or auth hash")

	// ErrIncorrectAuthHash indicates the current auth hash did not verify.
	ErrIncorrectAuthHash = errors.Wrap(errors.ErrUnauthorized, "incorrect auth hash")

	// ErrDuplicateRotatedItem indicates a vault item appears twice in a rotation.
	ErrDuplicateRotatedItem = errors.Wrap(errors.ErrInvalidInput, "vault item listed more than once")

	// ErrIncompleteRotation indicates a rotation left owned vault items out.
	ErrIncompleteRotation = errors.Wrap(
		errors.ErrInvalidInput,
		"rotation must include every vault item owned by the user",
	)
)
