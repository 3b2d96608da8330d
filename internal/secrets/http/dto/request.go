// Package dto provides data transfer objects for secret HTTP handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

// CreateSecretRequest contains the parameters for sharing a new secret. An empty
// or whitespace-only password leaves the secret without a password gate.
type CreateSecretRequest struct {
	Content     string `json:"content"`
	MaxAccesses int    `json:"max_accesses"`
	TTLSeconds  int    `json:"ttl_seconds"`
	Password    string `json:"password,omitempty"`
}

// Validate checks if the create secret request is valid. Upper bounds are
// configuration and are enforced by the use case.
func (r *CreateSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.MaxAccesses,
			validation.Required.Error("max_accesses must be at least 1"),
			validation.Min(1).Error("max_accesses must be at least 1"),
		),
		validation.Field(&r.TTLSeconds,
			validation.Required.Error("ttl_seconds must be greater than 0"),
			validation.Min(1).Error("ttl_seconds must be greater than 0"),
		),
	)
}

// ToInput converts the request into the use case input.
func (r *CreateSecretRequest) ToInput() *secretsDomain.CreateSecretInput {
	return &secretsDomain.CreateSecretInput{
		Content:     r.Content,
		MaxAccesses: r.MaxAccesses,
		TTL:         time.Duration(r.TTLSeconds) * time.Second,
		Password:    r.Password,
	}
}

// AccessSecretRequest is the optional body of an access request.
type AccessSecretRequest struct {
	Password string `json:"password"`
}
