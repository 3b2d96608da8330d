package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/zkvault/zkvault/internal/crypto/domain"
	cryptoService "github.com/zkvault/zkvault/internal/crypto/service"
)

// ContentSealer returns the AEAD sealer for shared secret content.
// The content key is decoded, and unwrapped through KMS when KMSKeyURI is set, on first access.
func (c *Container) ContentSealer() (cryptoService.ContentSealer, error) {
	var err error
	c.contentSealerInit.Do(func() {
		c.contentSealer, err = c.initContentSealer(context.Background())
		if err != nil {
			c.initErrors["contentSealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contentSealer"]; exists {
		return nil, storedErr
	}
	return c.contentSealer, nil
}

func (c *Container) initContentSealer(ctx context.Context) (cryptoService.ContentSealer, error) {
	key, err := cryptoService.LoadContentKey(
		ctx,
		cryptoService.NewKMSService(),
		c.config.ContentEncryptionKey,
		c.config.KMSKeyURI,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load content key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	sealer, err := cryptoService.NewContentSealer(
		cryptoService.NewAEADManager(),
		key,
		cryptoDomain.Algorithm(c.config.ContentEncryptionAlgorithm),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content sealer: %w", err)
	}
	return sealer, nil
}
