package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADManagerService_CreateCipher(t *testing.T) {
	manager := NewAEADManager()
	validKey := newTestKey(t)

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			created, err := manager.CreateCipher(validKey, alg)
			require.NoError(t, err)
			require.IsType(t, &aeadCipher{}, created)
			assert.Equal(t, alg, created.(*aeadCipher).alg)
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		_, err := manager.CreateCipher(validKey, cryptoDomain.Algorithm("rot13"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
		assert.ErrorContains(t, err, `"rot13"`)
	})

	t.Run("InvalidKeySize", func(t *testing.T) {
		for _, size := range []int{0, 16, 64} {
			_, err := manager.CreateCipher(make([]byte, size), cryptoDomain.AESGCM)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "key size %d", size)
		}
	})
}

func TestAEAD_RoundTrip(t *testing.T) {
	manager := NewAEADManager()

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			cipher, err := manager.CreateCipher(newTestKey(t), alg)
			require.NoError(t, err)

			plaintext := []byte("meet me at the usual place")
			aad := []byte("0196f6a4-8a4e-7c41-b1b2-3f0c2d9e8a11")

			ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
			require.NoError(t, err)
			assert.Len(t, nonce, 12)
			assert.NotEqual(t, plaintext, ciphertext[:len(plaintext)])

			decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)

			_, secondNonce, err := cipher.Encrypt(plaintext, aad)
			require.NoError(t, err)
			assert.NotEqual(t, nonce, secondNonce)

			_, err = cipher.Decrypt(ciphertext, nonce, []byte("another record"))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

			tampered := append([]byte(nil), ciphertext...)
			tampered[0] ^= 0xff
			_, err = cipher.Decrypt(tampered, nonce, aad)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

			_, err = cipher.Decrypt(ciphertext, nonce[:4], aad)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		})
	}
}
