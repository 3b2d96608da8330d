// Package domain defines the algorithms, keys and errors used to seal shared
// secret content at rest.
package domain

// Algorithm is an AEAD algorithm used to seal content.
type Algorithm string

const (
	// AESGCM is AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305. Preferred where AES has no hardware support.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the key length in bytes shared by every supported algorithm.
const KeySize = 32
