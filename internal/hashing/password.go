package hashing

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// PasswordHasher hashes and verifies values that must be salted and stretched.
type PasswordHasher interface {
	// Hash returns a salted Argon2id digest in PHC string format.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches digest. Malformed digests never match.
	Verify(plain string, digest string) bool
}

type argon2Hasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates an Argon2id hasher using the interactive policy.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &argon2Hasher{hasher: hasher}, nil
}

func (h *argon2Hasher) Hash(plain string) (string, error) {
	digest, err := h.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash value")
	}
	return digest, nil
}

func (h *argon2Hasher) Verify(plain string, digest string) bool {
	ok, err := h.hasher.Verify([]byte(plain), digest)
	if err != nil {
		return false
	}
	return ok
}
