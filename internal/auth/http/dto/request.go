// Package dto provides data transfer objects for the session endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/zkvault/zkvault/internal/validation"
)

// LoginRequest contains the credentials for opening a session.
type LoginRequest struct {
	Email    string `json:"email"`
	AuthHash string `json:"auth_hash"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 255),
		),
		validation.Field(&r.AuthHash,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1024),
		),
	)
}

// RefreshTokenRequest carries a refresh token for refresh and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks if the refresh request is valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 512),
		),
	)
}
