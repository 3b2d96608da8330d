package service

import (
	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
)

type contentSealer struct {
	aead AEAD
}

// NewContentSealer creates a ContentSealer for alg. The sealer keeps no reference
// to key, so the caller may zero it afterwards.
func NewContentSealer(manager AEADManager, key []byte, alg cryptoDomain.Algorithm) (ContentSealer, error) {
	aead, err := manager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}
	return &contentSealer{aead: aead}, nil
}

func (s *contentSealer) Seal(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	return s.aead.Encrypt(plaintext, aad)
}

func (s *contentSealer) Open(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := s.aead.Decrypt(ciphertext, nonce, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
