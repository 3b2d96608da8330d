package app

import (
	"fmt"

	secretsRepository "github.com/zkvault/zkvault/internal/secrets/repository"
	secretsUseCase "github.com/zkvault/zkvault/internal/secrets/usecase"
)

// SecretRepository returns the shared secret repository based on database driver.
func (c *Container) SecretRepository() (secretsUseCase.SecretRepository, error) {
	var err error
	c.secretRepoInit.Do(func() {
		c.secretRepo, err = c.initSecretRepository()
		if err != nil {
			c.initErrors["secretRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretRepo"]; exists {
		return nil, storedErr
	}
	return c.secretRepo, nil
}

// SecretUseCase returns the ephemeral secret lifecycle use case.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

func (c *Container) initSecretRepository() (secretsUseCase.SecretRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return secretsRepository.NewMySQLSecretRepository(db), nil
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSecretUseCase() (secretsUseCase.SecretUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret use case: %w", err)
	}

	secretRepo, err := c.SecretRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret repository for secret use case: %w", err)
	}

	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for secret use case: %w", err)
	}

	sealer, err := c.ContentSealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get content sealer for secret use case: %w", err)
	}

	baseUseCase := secretsUseCase.NewSecretUseCase(
		txManager,
		secretRepo,
		c.TokenGenerator(),
		hasher,
		sealer,
		secretsUseCase.Limits{
			MaxTTL:          c.config.SecretMaxTTL,
			MaxAccesses:     c.config.SecretMaxAccesses,
			MaxContentBytes: c.config.SecretMaxContentBytes,
		},
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
		}
		return secretsUseCase.NewSecretUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
