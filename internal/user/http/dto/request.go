// Package dto provides data transfer objects for the account HTTP layer.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	userDomain "github.com/zkvault/zkvault/internal/user/domain"
	customValidation "github.com/zkvault/zkvault/internal/validation"
	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

// RegisterRequest represents the API request for account registration.
// The auth hash is derived on the client; the vault key blob and IV are opaque.
type RegisterRequest struct {
	Email        string `json:"email"`
	AuthHash     string `json:"auth_hash"`
	VaultKeyBlob string `json:"vault_key_blob"`
	VaultKeyIV   string `json:"vault_key_iv"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.AuthHash,
			validation.Required.Error("auth_hash is required"),
			customValidation.NotBlank,
			validation.Length(1, 1024),
		),
		validation.Field(&r.VaultKeyBlob,
			validation.Required.Error("vault_key_blob is required"),
			customValidation.NotBlank,
		),
		validation.Field(&r.VaultKeyIV,
			validation.Required.Error("vault_key_iv is required"),
			customValidation.NotBlank,
		),
	)
}

// ToRegisterInput converts the request into the use case input.
func (r *RegisterRequest) ToRegisterInput() *userDomain.RegisterInput {
	return &userDomain.RegisterInput{
		Email:        r.Email,
		AuthHash:     r.AuthHash,
		VaultKeyBlob: r.VaultKeyBlob,
		VaultKeyIV:   r.VaultKeyIV,
	}
}

// DeleteAccountRequest confirms account deletion with the current auth hash.
type DeleteAccountRequest struct {
	AuthHash string `json:"auth_hash"`
}

// Validate checks if the delete request is valid.
func (r *DeleteAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AuthHash, validation.Required, customValidation.NotBlank),
	)
}

// RotatedItem is one vault item re-encrypted under the new vault key.
type RotatedItem struct {
	ID                string `json:"id"`
	Site              string `json:"site"`
	EncryptedPassword string `json:"encrypted_password"`
}

// Validate checks a single rotated item.
func (i RotatedItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required, validation.By(validateUUID)),
		validation.Field(&i.Site, validation.Required, validation.Length(1, 2048)),
		validation.Field(&i.EncryptedPassword, validation.Required, customValidation.NotBlank),
	)
}

// RotateCredentialsRequest replaces the auth hash and vault key and carries every
// vault item re-encrypted under the new key.
type RotateCredentialsRequest struct {
	CurrentAuthHash string        `json:"current_auth_hash"`
	NewAuthHash     string        `json:"new_auth_hash"`
	NewVaultKeyBlob string        `json:"new_vault_key_blob"`
	NewVaultKeyIV   string        `json:"new_vault_key_iv"`
	Items           []RotatedItem `json:"items"`
}

// Validate checks if the rotate request is valid.
func (r *RotateCredentialsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentAuthHash, validation.Required, customValidation.NotBlank),
		validation.Field(&r.NewAuthHash, validation.Required, customValidation.NotBlank,
			validation.Length(1, 1024)),
		validation.Field(&r.NewVaultKeyBlob, validation.Required, customValidation.NotBlank),
		validation.Field(&r.NewVaultKeyIV, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Items),
	)
}

// ToRotateInput converts the request into the use case input. Validate must have passed.
func (r *RotateCredentialsRequest) ToRotateInput() *userDomain.RotateCredentialsInput {
	items := make([]*vaultDomain.VaultItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, &vaultDomain.VaultItem{
			ID:                uuid.MustParse(item.ID),
			Site:              item.Site,
			EncryptedPassword: item.EncryptedPassword,
		})
	}
	return &userDomain.RotateCredentialsInput{
		CurrentAuthHash: r.CurrentAuthHash,
		NewAuthHash:     r.NewAuthHash,
		NewVaultKeyBlob: r.NewVaultKeyBlob,
		NewVaultKeyIV:   r.NewVaultKeyIV,
		Items:           items,
	}
}

func validateUUID(value any) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}
