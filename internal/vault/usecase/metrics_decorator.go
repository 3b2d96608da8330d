package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/metrics"
	vaultDomain "github.com/zkvault/zkvault/internal/vault/domain"
)

// vaultItemUseCaseWithMetrics decorates VaultItemUseCase with metrics instrumentation.
type vaultItemUseCaseWithMetrics struct {
	next    VaultItemUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultItemUseCaseWithMetrics wraps a VaultItemUseCase with metrics recording.
func NewVaultItemUseCaseWithMetrics(useCase VaultItemUseCase, m metrics.BusinessMetrics) VaultItemUseCase {
	return &vaultItemUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *vaultItemUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, v.metrics, "vault", operation, start, err)
}

// List records metrics for vault listing operations.
func (v *vaultItemUseCaseWithMetrics) List(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.VaultItem, error) {
	start := time.Now()
	items, err := v.next.List(ctx, ownerID, offset, limit)
	v.record(ctx, "item_list", start, err)
	return items, err
}

// Create records metrics for vault item creation.
func (v *vaultItemUseCaseWithMetrics) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	site, encryptedPassword string,
) (*vaultDomain.VaultItem, error) {
	start := time.Now()
	item, err := v.next.Create(ctx, ownerID, site, encryptedPassword)
	v.record(ctx, "item_create", start, err)
	return item, err
}

// Update records metrics for vault item updates.
func (v *vaultItemUseCaseWithMetrics) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	site, encryptedPassword string,
) (*vaultDomain.VaultItem, error) {
	start := time.Now()
	item, err := v.next.Update(ctx, ownerID, id, site, encryptedPassword)
	v.record(ctx, "item_update", start, err)
	return item, err
}

// Delete records metrics for vault item deletion.
func (v *vaultItemUseCaseWithMetrics) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	start := time.Now()
	err := v.next.Delete(ctx, ownerID, id)
	v.record(ctx, "item_delete", start, err)
	return err
}
