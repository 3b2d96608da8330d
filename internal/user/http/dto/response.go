package dto

import (
	"time"

	"github.com/google/uuid"

	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// UserResponse represents the API response for a registered user.
// It never includes the auth hash digest or the vault key material.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// VaultKeyResponse carries the encrypted vault key back to its owner.
type VaultKeyResponse struct {
	VaultKeyBlob string `json:"vault_key_blob"`
	VaultKeyIV   string `json:"vault_key_iv"`
}

// MapUserToResponse converts a domain user into its API representation.
func MapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// MapVaultKeyToResponse converts vault key material into its API representation.
func MapVaultKeyToResponse(material *userDomain.VaultKeyMaterial) VaultKeyResponse {
	return VaultKeyResponse{
		VaultKeyBlob: material.VaultKeyBlob,
		VaultKeyIV:   material.VaultKeyIV,
	}
}
