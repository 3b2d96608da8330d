package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/metrics"
	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "secrets", operation, start, err)
}

// Create records metrics for secret creation.
func (s *secretUseCaseWithMetrics) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input *secretsDomain.CreateSecretInput,
) (*secretsDomain.CreatedSecret, error) {
	start := time.Now()
	created, err := s.next.Create(ctx, ownerID, input)
	s.record(ctx, "secret_create", start, err)
	return created, err
}

// ListOwned records metrics for secret listing.
func (s *secretUseCaseWithMetrics) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	start := time.Now()
	secrets, err := s.next.ListOwned(ctx, ownerID, offset, limit)
	s.record(ctx, "secret_list", start, err)
	return secrets, err
}

// Access records metrics for secret access.
func (s *secretUseCaseWithMetrics) Access(
	ctx context.Context,
	token, password string,
) (*secretsDomain.AccessedSecret, error) {
	start := time.Now()
	accessed, err := s.next.Access(ctx, token, password)
	s.record(ctx, "secret_access", start, err)
	return accessed, err
}

// Revoke records metrics for secret revocation.
func (s *secretUseCaseWithMetrics) Revoke(ctx context.Context, ownerID, id uuid.UUID) error {
	start := time.Now()
	err := s.next.Revoke(ctx, ownerID, id)
	s.record(ctx, "secret_revoke", start, err)
	return err
}

// CleanupExpired records metrics for the expired secret sweep.
func (s *secretUseCaseWithMetrics) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := s.next.CleanupExpired(ctx, dryRun)
	s.record(ctx, "secret_cleanup", start, err)
	return count, err
}
