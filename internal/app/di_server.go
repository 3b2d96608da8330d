package app

import (
	"fmt"

	authHTTP "github.com/zkvault/zkvault/internal/auth/http"
	"github.com/zkvault/zkvault/internal/http"
	leaksHTTP "github.com/zkvault/zkvault/internal/leaks/http"
	secretsHTTP "github.com/zkvault/zkvault/internal/secrets/http"
	"github.com/zkvault/zkvault/internal/sweeper"
	userHTTP "github.com/zkvault/zkvault/internal/user/http"
	vaultHTTP "github.com/zkvault/zkvault/internal/vault/http"
)

// HTTPServer returns the API server with its router fully assembled.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Sweeper returns the background purger of expired refresh tokens and secrets.
func (c *Container) Sweeper() (*sweeper.Sweeper, error) {
	var err error
	c.sweeperInit.Do(func() {
		c.sweeper, err = c.initSweeper()
		if err != nil {
			c.initErrors["sweeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sweeper"]; exists {
		return nil, storedErr
	}
	return c.sweeper, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}
	rotationUseCase, err := c.RotationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get rotation use case for http server: %w", err)
	}
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}
	vaultItemUseCase, err := c.VaultItemUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault item use case for http server: %w", err)
	}
	secretUseCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for http server: %w", err)
	}
	leakUseCase, err := c.LeakUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get leak use case for http server: %w", err)
	}
	authMiddleware, err := c.AuthenticationMiddleware()
	if err != nil {
		return nil, err
	}
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		c.config,
		http.Handlers{
			Session: authHTTP.NewSessionHandler(sessionUseCase, logger),
			Account: userHTTP.NewAccountHandler(userUseCase, rotationUseCase, logger),
			Vault:   vaultHTTP.NewVaultItemHandler(vaultItemUseCase, logger),
			Secret:  secretsHTTP.NewSecretHandler(secretUseCase, logger),
			Leak:    leaksHTTP.NewLeakHandler(leakUseCase, logger),
		},
		authMiddleware,
		metricsProvider,
	)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if metricsProvider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}

func (c *Container) initSweeper() (*sweeper.Sweeper, error) {
	ledger, err := c.RefreshTokenLedger()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token ledger for sweeper: %w", err)
	}
	secretUseCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for sweeper: %w", err)
	}

	return sweeper.New(
		c.config.SweepInterval,
		c.Logger(),
		sweeper.Target{Name: "refresh_tokens", Cleaner: ledger},
		sweeper.Target{Name: "secrets", Cleaner: secretUseCase},
	), nil
}
