package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
)

// aeadCipher adapts a cipher.AEAD to AEAD. Every Encrypt draws a fresh random
// nonce; the authentication tag is appended to the ciphertext. Safe for
// concurrent use.
type aeadCipher struct {
	alg  cryptoDomain.Algorithm
	aead cipher.AEAD
}

func newAESGCM(key []byte) (AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &aeadCipher{alg: cryptoDomain.AESGCM, aead: aead}, nil
}

func newChaCha20Poly1305(key []byte) (AEAD, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}
	return &aeadCipher{alg: cryptoDomain.ChaCha20, aead: aead}, nil
}

func (a *aeadCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return a.aead.Seal(nil, nonce, plaintext, aad), nonce, nil
}

func (a *aeadCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, fmt.Errorf("%w: %s nonce must be %d bytes", cryptoDomain.ErrDecryptionFailed, a.alg, a.aead.NonceSize())
	}
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}
