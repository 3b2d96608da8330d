// Package repository provides data persistence implementations for vault items.
// Every query that reads or writes an individual item is scoped by owner.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/vault/domain"
)

// PostgreSQLVaultItemRepository handles vault item persistence for PostgreSQL.
type PostgreSQLVaultItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLVaultItemRepository creates a new PostgreSQLVaultItemRepository.
func NewPostgreSQLVaultItemRepository(db *sql.DB) *PostgreSQLVaultItemRepository {
	return &PostgreSQLVaultItemRepository{db: db}
}

// Create inserts a new vault item.
func (r *PostgreSQLVaultItemRepository) Create(ctx context.Context, item *domain.VaultItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO vault_items (id, owner_id, site, encrypted_password, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.OwnerID,
		item.Site,
		item.EncryptedPassword,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create vault item")
	}
	return nil
}

// GetByID retrieves a vault item regardless of owner. Callers compare OwnerID.
func (r *PostgreSQLVaultItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, site, encrypted_password, created_at, updated_at
			  FROM vault_items WHERE id = $1`

	var item domain.VaultItem
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.OwnerID,
		&item.Site,
		&item.EncryptedPassword,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVaultItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault item")
	}
	return &item, nil
}

// ListByOwner returns the owner's vault items ordered by creation time.
func (r *PostgreSQLVaultItemRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.VaultItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, site, encrypted_password, created_at, updated_at
			  FROM vault_items WHERE owner_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault items")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*domain.VaultItem, 0)
	for rows.Next() {
		var item domain.VaultItem
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Site,
			&item.EncryptedPassword,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault item")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault items")
	}
	return items, nil
}

// LockOwnedIDs returns the IDs of every vault item owned by ownerID and, inside a
// transaction, holds row locks on them until commit.
func (r *PostgreSQLVaultItemRepository) LockOwnedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(
		ctx,
		`SELECT id FROM vault_items WHERE owner_id = $1 ORDER BY id FOR UPDATE`,
		ownerID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to lock vault items")
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault item id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault item ids")
	}
	return ids, nil
}

// Update overwrites the site and encrypted password of an item owned by item.OwnerID.
// Returns ErrVaultItemNotFound when no such owned item exists.
func (r *PostgreSQLVaultItemRepository) Update(ctx context.Context, item *domain.VaultItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE vault_items SET site = $1, encrypted_password = $2, updated_at = $3
			  WHERE id = $4 AND owner_id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		item.Site,
		item.EncryptedPassword,
		item.UpdatedAt,
		item.ID,
		item.OwnerID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update vault item")
	}
	return requireOneRow(result)
}

// Delete removes an item owned by ownerID.
func (r *PostgreSQLVaultItemRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM vault_items WHERE id = $1 AND owner_id = $2`,
		id,
		ownerID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vault item")
	}
	return requireOneRow(result)
}

func requireOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows != 1 {
		return domain.ErrVaultItemNotFound
	}
	return nil
}
