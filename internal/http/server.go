// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/zkvault/zkvault/internal/auth/http"
	"github.com/zkvault/zkvault/internal/config"
	leaksHTTP "github.com/zkvault/zkvault/internal/leaks/http"
	"github.com/zkvault/zkvault/internal/metrics"
	secretsHTTP "github.com/zkvault/zkvault/internal/secrets/http"
	userHTTP "github.com/zkvault/zkvault/internal/user/http"
	vaultHTTP "github.com/zkvault/zkvault/internal/vault/http"
)

const readinessTimeout = 2 * time.Second

// Handlers groups the handlers mounted by SetupRouter.
type Handlers struct {
	Session *authHTTP.SessionHandler
	Account *userHTTP.AccountHandler
	Vault   *vaultHTTP.VaultItemHandler
	Secret  *secretsHTTP.SecretHandler
	Leak    *leaksHTTP.LeakHandler
}

// Server is the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// stopRouter cancels background work started by the router's middleware.
	stopRouter context.CancelFunc
}

// NewServer creates a Server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with every route of the API. Calling it
// again replaces the router and stops the previous one's background work.
func (s *Server) SetupRouter(
	cfg *config.Config,
	handlers Handlers,
	authMiddleware gin.HandlerFunc,
	metricsProvider *metrics.Provider,
) {
	if s.stopRouter != nil {
		s.stopRouter()
	}
	routerCtx, stopRouter := context.WithCancel(context.Background())
	s.stopRouter = stopRouter

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	public := v1.Group("")
	if cfg.RateLimitPublicEnabled {
		public.Use(authHTTP.PublicRateLimitMiddleware(
			routerCtx,
			cfg.RateLimitPublicRequestsPerSec,
			cfg.RateLimitPublicBurst,
			s.logger,
		))
	}
	public.POST("/auth/register", handlers.Account.RegisterHandler)
	public.POST("/auth/login", handlers.Session.LoginHandler)
	public.POST("/auth/refresh", handlers.Session.RefreshHandler)
	public.POST("/auth/logout", handlers.Session.LogoutHandler)
	public.POST("/secrets/access/:token", handlers.Secret.AccessHandler)

	protected := v1.Group("", authMiddleware)
	if cfg.RateLimitEnabled {
		protected.Use(authHTTP.RateLimitMiddleware(
			routerCtx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	account := protected.Group("/account")
	{
		account.GET("/vault-key", handlers.Account.GetVaultKeyHandler)
		account.POST("/rotate", handlers.Account.RotateCredentialsHandler)
		account.DELETE("", handlers.Account.DeleteAccountHandler)
	}

	items := protected.Group("/vault/items")
	{
		items.GET("", handlers.Vault.ListHandler)
		items.POST("", handlers.Vault.CreateHandler)
		items.PUT("/:id", handlers.Vault.UpdateHandler)
		items.DELETE("/:id", handlers.Vault.DeleteHandler)
	}

	secrets := protected.Group("/secrets")
	{
		secrets.GET("", handlers.Secret.ListHandler)
		secrets.POST("", handlers.Secret.CreateHandler)
		secrets.POST("/:id/revoke", handlers.Secret.RevokeHandler)
	}

	leaks := protected.Group("/leaks")
	{
		leaks.POST("/email/check", handlers.Leak.EmailCheckHandler)
		leaks.POST("/password/check", handlers.Leak.PasswordCheckHandler)
	}

	s.router = router
}

// GetHandler returns the router, mainly for tests.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server and stops the router's
// background work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.stopRouter != nil {
		defer s.stopRouter()
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if database != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": database},
	})
}
