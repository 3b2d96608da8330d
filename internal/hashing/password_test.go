package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher, err := NewPasswordHasher()
	require.NoError(t, err)
	assert.IsType(t, &argon2Hasher{}, hasher)
}

func TestPasswordHasher_Hash(t *testing.T) {
	hasher, err := NewPasswordHasher()
	require.NoError(t, err)

	t.Run("Success_ProducesArgon2idDigest", func(t *testing.T) {
		digest, err := hasher.Hash("client-auth-hash")
		require.NoError(t, err)
		assert.Contains(t, digest, "$argon2id$")
		assert.NotContains(t, digest, "client-auth-hash")
	})

	t.Run("Success_SaltsEveryDigest", func(t *testing.T) {
		first, err := hasher.Hash("same-value")
		require.NoError(t, err)
		second, err := hasher.Hash("same-value")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestPasswordHasher_Verify(t *testing.T) {
	hasher, err := NewPasswordHasher()
	require.NoError(t, err)

	digest, err := hasher.Hash("correct")
	require.NoError(t, err)

	tests := []struct {
		name     string
		plain    string
		digest   string
		expected bool
	}{
		{name: "Match", plain: "correct", digest: digest, expected: true},
		{name: "Mismatch", plain: "wrong", digest: digest, expected: false},
		{name: "EmptyPlain", plain: "", digest: digest, expected: false},
		{name: "MalformedDigest", plain: "correct", digest: "not-a-phc-string", expected: false},
		{name: "EmptyDigest", plain: "correct", digest: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hasher.Verify(tt.plain, tt.digest))
		})
	}
}
