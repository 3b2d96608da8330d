package service

import (
	"fmt"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
)

var cipherConstructors = map[cryptoDomain.Algorithm]func(key []byte) (AEAD, error){
	cryptoDomain.AESGCM:   newAESGCM,
	cryptoDomain.ChaCha20: newChaCha20Poly1305,
}

// AEADManagerService builds AEAD ciphers for the content sealer.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns ErrInvalidKeySize if key is not KeySize bytes and
// ErrUnsupportedAlgorithm if alg has no constructor.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", cryptoDomain.ErrInvalidKeySize, len(key))
	}

	newCipher, ok := cipherConstructors[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedAlgorithm, alg)
	}
	return newCipher(key)
}
