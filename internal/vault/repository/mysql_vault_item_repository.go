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

// MySQLVaultItemRepository handles vault item persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLVaultItemRepository struct {
	db *sql.DB
}

// NewMySQLVaultItemRepository creates a new MySQLVaultItemRepository.
func NewMySQLVaultItemRepository(db *sql.DB) *MySQLVaultItemRepository {
	return &MySQLVaultItemRepository{db: db}
}

// Create inserts a new vault item.
func (r *MySQLVaultItemRepository) Create(ctx context.Context, item *domain.VaultItem) error {
	querier := database.GetTx(ctx, r.db)

	id, ownerID, err := marshalIDs(item.ID, item.OwnerID)
	if err != nil {
		return err
	}

	query := `INSERT INTO vault_items (id, owner_id, site, encrypted_password, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		ownerID,
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
func (r *MySQLVaultItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultItem, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, owner_id, site, encrypted_password, created_at, updated_at
			  FROM vault_items WHERE id = ?`

	item, err := scanVaultItem(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVaultItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault item")
	}
	return item, nil
}

// ListByOwner returns the owner's vault items ordered by creation time.
func (r *MySQLVaultItemRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.VaultItem, error) {
	querier := database.GetTx(ctx, r.db)

	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, owner_id, site, encrypted_password, created_at, updated_at
			  FROM vault_items WHERE owner_id = ? ORDER BY created_at, id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, ownerBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault items")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*domain.VaultItem, 0)
	for rows.Next() {
		item, err := scanVaultItem(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault items")
	}
	return items, nil
}

// LockOwnedIDs returns the IDs of every vault item owned by ownerID and, inside a
// transaction, holds row locks on them until commit.
func (r *MySQLVaultItemRepository) LockOwnedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, r.db)

	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(
		ctx,
		`SELECT id FROM vault_items WHERE owner_id = ? ORDER BY id FOR UPDATE`,
		ownerBytes,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to lock vault items")
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var idBytes []byte
		if err := rows.Scan(&idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault item id")
		}
		var id uuid.UUID
		if err := id.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault item ids")
	}
	return ids, nil
}

// Update overwrites the site and encrypted password of an item owned by item.OwnerID.
func (r *MySQLVaultItemRepository) Update(ctx context.Context, item *domain.VaultItem) error {
	querier := database.GetTx(ctx, r.db)

	id, ownerID, err := marshalIDs(item.ID, item.OwnerID)
	if err != nil {
		return err
	}

	query := `UPDATE vault_items SET site = ?, encrypted_password = ?, updated_at = ?
			  WHERE id = ? AND owner_id = ?`

	result, err := querier.ExecContext(ctx, query, item.Site, item.EncryptedPassword, item.UpdatedAt, id, ownerID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update vault item")
	}
	return requireOneRow(result)
}

// Delete removes an item owned by ownerID.
func (r *MySQLVaultItemRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, ownerBytes, err := marshalIDs(id, ownerID)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM vault_items WHERE id = ? AND owner_id = ?`,
		idBytes,
		ownerBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vault item")
	}
	return requireOneRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaultItem(row rowScanner) (*domain.VaultItem, error) {
	var item domain.VaultItem
	var idBytes, ownerBytes []byte

	if err := row.Scan(
		&idBytes,
		&ownerBytes,
		&item.Site,
		&item.EncryptedPassword,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := item.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := item.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &item, nil
}

func marshalIDs(id, ownerID uuid.UUID) ([]byte, []byte, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return idBytes, ownerBytes, nil
}
