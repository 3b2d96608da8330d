package dto

import (
	"time"

	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

// VaultItemResponse represents a vault item in API responses.
type VaultItemResponse struct {
	ID                string    `json:"id"`
	Site              string    `json:"site"`
	EncryptedPassword string    `json:"encrypted_password"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ListVaultItemsResponse represents a paginated list of vault items.
type ListVaultItemsResponse struct {
	Data []VaultItemResponse `json:"data"`
}

// MapVaultItemToResponse converts a domain vault item to an API response.
func MapVaultItemToResponse(item *vaultDomain.VaultItem) VaultItemResponse {
	return VaultItemResponse{
		ID:                item.ID.String(),
		Site:              item.Site,
		EncryptedPassword: item.EncryptedPassword,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// MapVaultItemsToListResponse converts domain vault items to a list response.
// An empty vault yields an empty data array, never null.
func MapVaultItemsToListResponse(items []*vaultDomain.VaultItem) ListVaultItemsResponse {
	data := make([]VaultItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, MapVaultItemToResponse(item))
	}
	return ListVaultItemsResponse{Data: data}
}
