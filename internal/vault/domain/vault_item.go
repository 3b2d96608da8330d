// Package domain defines the vault item entity. The server stores vault items as
// opaque ciphertext and never interprets the site label or the encrypted password.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/errors"
)

// VaultItem is a client-encrypted credential owned by exactly one user.
type VaultItem struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	Site              string
	EncryptedPassword string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Domain-specific errors for vault item operations.
var (
	// ErrVaultItemNotFound indicates the vault item does not exist.
	ErrVaultItemNotFound = errors.Wrap(errors.ErrNotFound, "vault item not found")

	// ErrVaultItemNotOwned indicates the vault item belongs to another user.
	ErrVaultItemNotOwned = errors.Wrap(errors.ErrForbidden, "vault item is not owned by the caller")
)
