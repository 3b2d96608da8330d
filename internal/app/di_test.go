package app

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	"github.com/zkvault/zkvault/internal/config"
	"github.com/zkvault/zkvault/internal/metrics"
)

// newTestConfig returns a configuration able to build every component without network access.
func newTestConfig() *config.Config {
	return &config.Config{
		LogLevel:                   "error",
		DBDriver:                   "postgres",
		ServerHost:                 "localhost",
		ServerPort:                 8080,
		AccessTokenSecret:          "test-access-token-secret-with-32-bytes",
		AccessTokenExpiration:      15 * time.Minute,
		RefreshTokenExpiration:     24 * time.Hour,
		SecretMaxTTL:               7 * 24 * time.Hour,
		SecretMaxAccesses:          100,
		SecretMaxContentBytes:      64 * 1024,
		ContentEncryptionAlgorithm: "aes-gcm",
		ContentEncryptionKey:       base64.StdEncoding.EncodeToString(make([]byte, 32)),
		XposedOrNotAPIURL:          "https://api.xposedornot.com/v1",
		XposedOrNotTimeout:         5 * time.Second,
		LeakCheckAPIURL:            "https://leakcheck.io/api/public",
		LeakCheckTimeout:           5 * time.Second,
		PwnedPasswordsAPIURL:       "https://api.pwnedpasswords.com",
		PwnedPasswordsTimeout:      5 * time.Second,
		PwnedPasswordsUserAgent:    "zkvault-test",
		SweepInterval:              time.Minute,
		MetricsNamespace:           "zkvault_test",
		MetricsPort:                8081,
	}
}

// newContainerWithMockDB returns a container whose database is a sqlmock connection.
func newContainerWithMockDB(t *testing.T, cfg *config.Config) (*Container, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	container := NewContainer(cfg)
	container.dbInit.Do(func() {
		container.db = db
	})
	return container, mock
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := newTestConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerLoggerDefaultLevel verifies that logger defaults to info level.
func TestContainerLoggerDefaultLevel(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "unknown"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	if !logger.Enabled(context.Background(), 0) {
		t.Error("expected info level to be enabled")
	}
	if logger.Enabled(context.Background(), -4) {
		t.Error("expected debug level to be disabled")
	}
}

// TestContainerInitializationErrors verifies that init errors are remembered.
func TestContainerInitializationErrors(t *testing.T) {
	cfg := &config.Config{
		DBDriver:           "invalid_driver",
		DBConnectionString: "",
	}

	container := NewContainer(cfg)

	_, err := container.DB()
	if err == nil {
		t.Error("expected error when connecting with invalid config")
	}

	_, err2 := container.DB()
	if err2 == nil {
		t.Error("expected error on second call to DB()")
	}

	_, err = container.TxManager()
	if err == nil {
		t.Error("expected tx manager to fail without a database")
	}
}

// TestContainerLazyInitialization verifies that components are only initialized when accessed.
func TestContainerLazyInitialization(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "info"})

	if container.logger != nil {
		t.Error("expected logger to be nil before first access")
	}

	if container.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}

	if container.logger == nil {
		t.Error("expected logger to be initialized after access")
	}
}

// TestContainerShutdown verifies that the shutdown method can be called safely.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "info"})

	if err := container.Shutdown(context.TODO()); err != nil {
		t.Errorf("unexpected error during shutdown: %v", err)
	}
}

func TestContainer_Repositories(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.DBDriver = driver
			container, _ := newContainerWithMockDB(t, cfg)

			userRepo, err := container.UserRepository()
			require.NoError(t, err)
			assert.NotNil(t, userRepo)

			vaultItemRepo, err := container.VaultItemRepository()
			require.NoError(t, err)
			assert.NotNil(t, vaultItemRepo)

			refreshTokenRepo, err := container.RefreshTokenRepository()
			require.NoError(t, err)
			assert.NotNil(t, refreshTokenRepo)

			secretRepo, err := container.SecretRepository()
			require.NoError(t, err)
			assert.NotNil(t, secretRepo)
		})
	}

	t.Run("UnsupportedDriver", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.DBDriver = "sqlite"
		container, _ := newContainerWithMockDB(t, cfg)

		_, err := container.UserRepository()
		assert.ErrorContains(t, err, "unsupported database driver: sqlite")

		// The failure is remembered and propagated to dependents.
		_, err = container.UserUseCase()
		assert.ErrorContains(t, err, "unsupported database driver")

		_, err = container.SecretRepository()
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}

func TestContainer_ContentSealer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		sealer, err := container.ContentSealer()
		require.NoError(t, err)

		ciphertext, nonce, err := sealer.Seal([]byte("hello"), []byte("aad"))
		require.NoError(t, err)

		plaintext, err := sealer.Open(ciphertext, nonce, []byte("aad"))
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), plaintext)
	})

	t.Run("MissingKey", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.ContentEncryptionKey = ""
		container := NewContainer(cfg)

		_, err := container.ContentSealer()
		assert.ErrorContains(t, err, "failed to load content key")

		_, err = container.SecretUseCase()
		assert.Error(t, err)
	})

	t.Run("UnsupportedAlgorithm", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.ContentEncryptionAlgorithm = "rot13"
		container := NewContainer(cfg)

		_, err := container.ContentSealer()
		assert.ErrorContains(t, err, "failed to create content sealer")
	})
}

func TestContainer_AccessTokenService(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		svc, err := container.AccessTokenService()
		require.NoError(t, err)
		require.NotNil(t, svc)

		again, err := container.AccessTokenService()
		require.NoError(t, err)
		assert.Same(t, svc, again)
	})

	for name, secret := range map[string]string{
		"MissingSecret": "",
		"ShortSecret":   "too-short-to-sign-with",
	} {
		t.Run(name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.AccessTokenSecret = secret
			container, _ := newContainerWithMockDB(t, cfg)

			_, err := container.AccessTokenService()
			assert.ErrorContains(t, err, "failed to create access token service")
			assert.ErrorIs(t, err, authDomain.ErrWeakAccessTokenSecret)

			// The failure is remembered and stops every authenticated surface.
			_, err = container.AccessTokenService()
			assert.ErrorIs(t, err, authDomain.ErrWeakAccessTokenSecret)

			_, err = container.SessionUseCase()
			assert.ErrorIs(t, err, authDomain.ErrWeakAccessTokenSecret)

			_, err = container.AuthenticationMiddleware()
			assert.ErrorIs(t, err, authDomain.ErrWeakAccessTokenSecret)

			_, err = container.HTTPServer()
			assert.Error(t, err)
		})
	}
}

func TestContainer_BusinessMetrics(t *testing.T) {
	t.Run("DisabledIsNoOp", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, metricsServer)
	})

	t.Run("Enabled", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		require.NotNil(t, provider)

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, metricsServer)

		assert.NoError(t, container.Shutdown(context.Background()))
	})
}

func TestContainer_HTTPServer(t *testing.T) {
	for _, metricsEnabled := range []bool{false, true} {
		name := "MetricsDisabled"
		if metricsEnabled {
			name = "MetricsEnabled"
		}
		t.Run(name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.MetricsEnabled = metricsEnabled
			container, mock := newContainerWithMockDB(t, cfg)

			server, err := container.HTTPServer()
			require.NoError(t, err)
			require.NotNil(t, server)
			assert.NotNil(t, server.GetHandler())

			again, err := container.HTTPServer()
			require.NoError(t, err)
			assert.Same(t, server, again)

			mock.ExpectClose()
			require.NoError(t, container.Shutdown(context.Background()))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestContainer_Sweeper(t *testing.T) {
	container, mock := newContainerWithMockDB(t, newTestConfig())

	sw, err := container.Sweeper()
	require.NoError(t, err)
	require.NotNil(t, sw)

	mock.ExpectClose()
	require.NoError(t, container.Shutdown(context.Background()))
}

func TestContainer_LeakUseCase(t *testing.T) {
	container := NewContainer(newTestConfig())

	leakUseCase, err := container.LeakUseCase()
	require.NoError(t, err)
	assert.NotNil(t, leakUseCase)
}
