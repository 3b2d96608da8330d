// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authService "github.com/zkvault/zkvault/internal/auth/service"
	authUseCase "github.com/zkvault/zkvault/internal/auth/usecase"
	cryptoService "github.com/zkvault/zkvault/internal/crypto/service"
	"github.com/zkvault/zkvault/internal/config"
	"github.com/zkvault/zkvault/internal/database"
	"github.com/zkvault/zkvault/internal/hashing"
	"github.com/zkvault/zkvault/internal/http"
	leaksUseCase "github.com/zkvault/zkvault/internal/leaks/usecase"
	"github.com/zkvault/zkvault/internal/metrics"
	secretsUseCase "github.com/zkvault/zkvault/internal/secrets/usecase"
	"github.com/zkvault/zkvault/internal/sweeper"
	userUseCase "github.com/zkvault/zkvault/internal/user/usecase"
	vaultUseCase "github.com/zkvault/zkvault/internal/vault/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Hashing
	tokenGenerator hashing.TokenGenerator
	passwordHasher hashing.PasswordHasher

	// Repositories
	userRepo         userUseCase.UserRepository
	vaultItemRepo    vaultItemRepository
	refreshTokenRepo authUseCase.RefreshTokenRepository
	secretRepo       secretsUseCase.SecretRepository

	// Services
	accessTokenService authService.AccessTokenService
	contentSealer      cryptoService.ContentSealer

	// Use Cases
	userUseCase        userUseCase.UserUseCase
	rotationUseCase    userUseCase.RotationUseCase
	vaultItemUseCase   vaultUseCase.VaultItemUseCase
	refreshTokenLedger authUseCase.RefreshTokenLedger
	sessionUseCase     authUseCase.SessionUseCase
	secretUseCase      secretsUseCase.SecretUseCase
	leakUseCase        leaksUseCase.LeakUseCase

	// Servers and Workers
	httpServer    *http.Server
	metricsServer *http.MetricsServer
	sweeper       *sweeper.Sweeper

	// Initialization flags and mutex for thread-safety
	mu                     sync.Mutex
	loggerInit             sync.Once
	dbInit                 sync.Once
	txManagerInit          sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	tokenGeneratorInit     sync.Once
	passwordHasherInit     sync.Once
	userRepoInit           sync.Once
	vaultItemRepoInit      sync.Once
	refreshTokenRepoInit   sync.Once
	secretRepoInit         sync.Once
	accessTokenServiceInit sync.Once
	contentSealerInit      sync.Once
	userUseCaseInit        sync.Once
	rotationUseCaseInit    sync.Once
	vaultItemUseCaseInit   sync.Once
	ledgerInit             sync.Once
	sessionUseCaseInit     sync.Once
	secretUseCaseInit      sync.Once
	leakUseCaseInit        sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	sweeperInit            sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider.
// It returns nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// A no-op recorder is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// TokenGenerator returns the generator for opaque refresh and share tokens.
func (c *Container) TokenGenerator() hashing.TokenGenerator {
	c.tokenGeneratorInit.Do(func() {
		c.tokenGenerator = hashing.NewTokenGenerator()
	})
	return c.tokenGenerator
}

// PasswordHasher returns the hasher used for stored authentication hashes and share passwords.
func (c *Container) PasswordHasher() (hashing.PasswordHasher, error) {
	var err error
	c.passwordHasherInit.Do(func() {
		c.passwordHasher, err = hashing.NewPasswordHasher()
		if err != nil {
			c.initErrors["passwordHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordHasher"]; exists {
		return nil, storedErr
	}
	return c.passwordHasher, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}
