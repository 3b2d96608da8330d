package hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// tokenBytes is the amount of randomness behind every bearer token (256 bits).
const tokenBytes = 32

// TokenGenerator creates bearer tokens and the digests stored in their place.
type TokenGenerator interface {
	// GenerateToken returns a URL-safe random token and its digest.
	// Only the digest may be persisted.
	GenerateToken() (plainToken string, tokenDigest string, err error)

	// DigestToken returns the hex SHA-256 digest of plainToken.
	DigestToken(plainToken string) string
}

type sha256TokenGenerator struct{}

// NewTokenGenerator creates a TokenGenerator backed by crypto/rand and SHA-256.
func NewTokenGenerator() TokenGenerator {
	return &sha256TokenGenerator{}
}

func (g *sha256TokenGenerator) GenerateToken() (string, string, error) {
	randomBytes := make([]byte, tokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.RawURLEncoding.EncodeToString(randomBytes)
	return plainToken, g.DigestToken(plainToken), nil
}

func (g *sha256TokenGenerator) DigestToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
