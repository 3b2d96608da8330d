package dto

import (
	"time"

	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

// CreateSecretResponse is returned once, when the secret is created. It is the
// only place the access token ever appears.
type CreateSecretResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SecretResponse describes an owned secret without its content or token.
type SecretResponse struct {
	ID                string    `json:"id"`
	MaxAccesses       int       `json:"max_accesses"`
	RemainingAccesses int       `json:"remaining_accesses"`
	PasswordProtected bool      `json:"password_protected"`
	IsRevoked         bool      `json:"is_revoked"`
	CreatedAt         time.Time `json:"created_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// ListSecretsResponse represents a paginated list of owned secrets.
type ListSecretsResponse struct {
	Data []SecretResponse `json:"data"`
}

// AccessSecretResponse carries the content of a successful read.
type AccessSecretResponse struct {
	Content           string    `json:"content"`
	RemainingAccesses int       `json:"remaining_accesses"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// MapCreatedSecretToResponse converts a freshly created secret to an API response.
func MapCreatedSecretToResponse(created *secretsDomain.CreatedSecret) CreateSecretResponse {
	return CreateSecretResponse{
		ID:        created.Secret.ID.String(),
		Token:     created.Token,
		ExpiresAt: created.Secret.ExpiresAt,
	}
}

// MapSecretToResponse converts a domain secret to its metadata response.
func MapSecretToResponse(secret *secretsDomain.Secret) SecretResponse {
	return SecretResponse{
		ID:                secret.ID.String(),
		MaxAccesses:       secret.MaxAccesses,
		RemainingAccesses: secret.RemainingAccesses,
		PasswordProtected: secret.HasPassword(),
		IsRevoked:         secret.IsRevoked,
		CreatedAt:         secret.CreatedAt,
		ExpiresAt:         secret.ExpiresAt,
	}
}

// MapSecretsToListResponse converts domain secrets to a list response.
func MapSecretsToListResponse(secrets []*secretsDomain.Secret) ListSecretsResponse {
	data := make([]SecretResponse, 0, len(secrets))
	for _, secret := range secrets {
		data = append(data, MapSecretToResponse(secret))
	}
	return ListSecretsResponse{Data: data}
}

// MapAccessedSecretToResponse converts the result of a read to an API response.
func MapAccessedSecretToResponse(accessed *secretsDomain.AccessedSecret) AccessSecretResponse {
	return AccessSecretResponse{
		Content:           accessed.Content,
		RemainingAccesses: accessed.RemainingAccesses,
		ExpiresAt:         accessed.ExpiresAt,
	}
}
