package domain

import (
	"github.com/zkvault/zkvault/internal/errors"
)

// Cryptographic error definitions.
var (
	// ErrUnsupportedAlgorithm indicates the configured algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a content key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidContentKey indicates the configured content key could not be decoded.
	ErrInvalidContentKey = errors.Wrap(errors.ErrInvalidInput, "invalid content encryption key")

	// ErrDecryptionFailed indicates sealed content failed authentication. The
	// cause (wrong key, wrong AAD or tampering) is deliberately not reported.
	ErrDecryptionFailed = errors.New("decryption failed")
)
