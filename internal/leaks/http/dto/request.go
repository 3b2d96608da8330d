// Package dto provides data transfer objects for breach lookup HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/zkvault/zkvault/internal/validation"
)

// EmailLeakCheckRequest contains the email address to look up.
type EmailLeakCheckRequest struct {
	Email string `json:"email"`
}

// Validate checks if the email leak check request is valid.
func (r *EmailLeakCheckRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			customValidation.Email,
		),
	)
}

// PasswordLeakCheckRequest carries the SHA-1 hex digest of a password. The
// password itself is never sent.
type PasswordLeakCheckRequest struct {
	SHA1 string `json:"sha1"`
}

// Validate checks if the password leak check request is valid.
func (r *PasswordLeakCheckRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SHA1,
			validation.Required.Error("sha1 is required"),
			customValidation.SHA1Hex,
		),
	)
}

// LeakCheckResponse is the verdict of a breach lookup.
type LeakCheckResponse struct {
	Leaked bool `json:"leaked"`
}
