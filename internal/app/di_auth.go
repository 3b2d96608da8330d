package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/zkvault/zkvault/internal/auth/http"
	authRepository "github.com/zkvault/zkvault/internal/auth/repository"
	authService "github.com/zkvault/zkvault/internal/auth/service"
	authUseCase "github.com/zkvault/zkvault/internal/auth/usecase"
)

// AccessTokenService returns the signer and verifier for access tokens.
// It fails when ACCESS_TOKEN_SECRET is blank or too short to sign with.
func (c *Container) AccessTokenService() (authService.AccessTokenService, error) {
	var err error
	c.accessTokenServiceInit.Do(func() {
		c.accessTokenService, err = authService.NewAccessTokenService(
			c.config.AccessTokenSecret,
			c.config.AccessTokenExpiration,
		)
		if err != nil {
			err = fmt.Errorf("failed to create access token service: %w", err)
			c.initErrors["accessTokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessTokenService"]; exists {
		return nil, storedErr
	}
	return c.accessTokenService, nil
}

// RefreshTokenRepository returns the refresh token repository based on database driver.
func (c *Container) RefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	var err error
	c.refreshTokenRepoInit.Do(func() {
		c.refreshTokenRepo, err = c.initRefreshTokenRepository()
		if err != nil {
			c.initErrors["refreshTokenRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["refreshTokenRepo"]; exists {
		return nil, storedErr
	}
	return c.refreshTokenRepo, nil
}

// RefreshTokenLedger returns the refresh token ledger.
func (c *Container) RefreshTokenLedger() (authUseCase.RefreshTokenLedger, error) {
	var err error
	c.ledgerInit.Do(func() {
		c.refreshTokenLedger, err = c.initRefreshTokenLedger()
		if err != nil {
			c.initErrors["refreshTokenLedger"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["refreshTokenLedger"]; exists {
		return nil, storedErr
	}
	return c.refreshTokenLedger, nil
}

// SessionUseCase returns the login, refresh and logout use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// AuthenticationMiddleware returns the bearer token middleware for protected routes.
func (c *Container) AuthenticationMiddleware() (gin.HandlerFunc, error) {
	users, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for authentication middleware: %w", err)
	}
	accessTokens, err := c.AccessTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token service for authentication middleware: %w", err)
	}
	return authHTTP.AuthenticationMiddleware(accessTokens, users, c.Logger()), nil
}

func (c *Container) initRefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for refresh token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLRefreshTokenRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLRefreshTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initRefreshTokenLedger() (authUseCase.RefreshTokenLedger, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for refresh token ledger: %w", err)
	}

	repo, err := c.RefreshTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token repository for refresh token ledger: %w", err)
	}

	return authUseCase.NewRefreshTokenLedger(
		txManager,
		repo,
		c.TokenGenerator(),
		c.config.RefreshTokenExpiration,
	), nil
}

func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	users, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for session use case: %w", err)
	}

	ledger, err := c.RefreshTokenLedger()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token ledger for session use case: %w", err)
	}

	accessTokens, err := c.AccessTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token service for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(users, ledger, accessTokens)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
