package app

import (
	"fmt"

	userUseCase "github.com/zkvault/zkvault/internal/user/usecase"
	vaultRepository "github.com/zkvault/zkvault/internal/vault/repository"
	vaultUseCase "github.com/zkvault/zkvault/internal/vault/usecase"
)

// vaultItemRepository is the vault item storage as seen by both the item use case
// and the rotation coordinator.
type vaultItemRepository interface {
	vaultUseCase.VaultItemRepository
	userUseCase.VaultItemRepository
}

// VaultItemRepository returns the vault item repository based on database driver.
func (c *Container) VaultItemRepository() (vaultItemRepository, error) {
	var err error
	c.vaultItemRepoInit.Do(func() {
		c.vaultItemRepo, err = c.initVaultItemRepository()
		if err != nil {
			c.initErrors["vaultItemRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultItemRepo"]; exists {
		return nil, storedErr
	}
	return c.vaultItemRepo, nil
}

// VaultItemUseCase returns the vault item use case.
func (c *Container) VaultItemUseCase() (vaultUseCase.VaultItemUseCase, error) {
	var err error
	c.vaultItemUseCaseInit.Do(func() {
		c.vaultItemUseCase, err = c.initVaultItemUseCase()
		if err != nil {
			c.initErrors["vaultItemUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultItemUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultItemUseCase, nil
}

func (c *Container) initVaultItemRepository() (vaultItemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for vault item repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return vaultRepository.NewMySQLVaultItemRepository(db), nil
	case "postgres":
		return vaultRepository.NewPostgreSQLVaultItemRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initVaultItemUseCase() (vaultUseCase.VaultItemUseCase, error) {
	vaultItemRepo, err := c.VaultItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault item repository for vault item use case: %w", err)
	}

	baseUseCase := vaultUseCase.NewVaultItemUseCase(vaultItemRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for vault item use case: %w", err)
		}
		return vaultUseCase.NewVaultItemUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
