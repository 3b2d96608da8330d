package usecase

import (
	"context"
	"time"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	"github.com/zkvault/zkvault/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "auth", operation, start, err)
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	email, authHash string,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Login(ctx, email, authHash)
	s.record(ctx, "login", start, err)
	return session, err
}

// Refresh records metrics for refresh token rotation.
func (s *sessionUseCaseWithMetrics) Refresh(ctx context.Context, refreshToken string) (*authDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Refresh(ctx, refreshToken)
	s.record(ctx, "refresh", start, err)
	return session, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, refreshToken string) error {
	start := time.Now()
	err := s.next.Logout(ctx, refreshToken)
	s.record(ctx, "logout", start, err)
	return err
}
