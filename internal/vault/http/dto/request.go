// Package dto provides data transfer objects for vault item HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/zkvault/zkvault/internal/validation"
)

// VaultItemRequest is the body of both create and update requests. Both fields
// are client ciphertext and are stored without interpretation.
type VaultItemRequest struct {
	Site              string `json:"site"`
	EncryptedPassword string `json:"encrypted_password"`
}

// Validate checks if the vault item request is valid.
func (r *VaultItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Site,
			validation.Required.Error("site is required"),
			customValidation.NotBlank,
		),
		validation.Field(&r.EncryptedPassword,
			validation.Required.Error("encrypted_password is required"),
			customValidation.NotBlank,
		),
	)
}
