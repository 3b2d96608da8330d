package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/metrics"
	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{next: useCase, metrics: m}
}

func recordAccount(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	metrics.Observe(ctx, m, "account", operation, start, err)
}

// Register records metrics for user registration.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input *userDomain.RegisterInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	recordAccount(ctx, u.metrics, "register", start, err)
	return user, err
}

// Authenticate records metrics for login verification.
func (u *userUseCaseWithMetrics) Authenticate(ctx context.Context, email, authHash string) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Authenticate(ctx, email, authHash)
	recordAccount(ctx, u.metrics, "authenticate", start, err)
	return user, err
}

// GetByID is not instrumented; it runs on every authenticated request.
func (u *userUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return u.next.GetByID(ctx, id)
}

// GetVaultKeyMaterial records metrics for vault key retrieval.
func (u *userUseCaseWithMetrics) GetVaultKeyMaterial(
	ctx context.Context,
	userID uuid.UUID,
) (*userDomain.VaultKeyMaterial, error) {
	start := time.Now()
	material, err := u.next.GetVaultKeyMaterial(ctx, userID)
	recordAccount(ctx, u.metrics, "vault_key_get", start, err)
	return material, err
}

// DeleteAccount records metrics for account deletion.
func (u *userUseCaseWithMetrics) DeleteAccount(ctx context.Context, userID uuid.UUID, authHash string) error {
	start := time.Now()
	err := u.next.DeleteAccount(ctx, userID, authHash)
	recordAccount(ctx, u.metrics, "delete", start, err)
	return err
}

// rotationUseCaseWithMetrics decorates RotationUseCase with metrics instrumentation.
type rotationUseCaseWithMetrics struct {
	next    RotationUseCase
	metrics metrics.BusinessMetrics
}

// NewRotationUseCaseWithMetrics wraps a RotationUseCase with metrics recording.
func NewRotationUseCaseWithMetrics(useCase RotationUseCase, m metrics.BusinessMetrics) RotationUseCase {
	return &rotationUseCaseWithMetrics{next: useCase, metrics: m}
}

// RotateCredentials records metrics for credential rotation.
func (r *rotationUseCaseWithMetrics) RotateCredentials(
	ctx context.Context,
	userID uuid.UUID,
	input *userDomain.RotateCredentialsInput,
) error {
	start := time.Now()
	err := r.next.RotateCredentials(ctx, userID, input)
	recordAccount(ctx, r.metrics, "rotate_credentials", start, err)
	return err
}
