// Package repository implements secret persistence for PostgreSQL and MySQL.
// Access serialization relies on SELECT ... FOR UPDATE inside the caller's transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	secretsDomain "github.com/zkvault/zkvault/internal/secrets/domain"
)

const postgresSecretColumns = `id, owner_id, token_hash, ciphertext, nonce, max_accesses, remaining_accesses,
			  password_hash, is_revoked, created_at, expires_at`

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL databases.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret.
func (p *PostgreSQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secrets (` + postgresSecretColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID,
		secret.OwnerID,
		secret.TokenHash,
		secret.Ciphertext,
		secret.Nonce,
		secret.MaxAccesses,
		secret.RemainingAccesses,
		nullableString(secret.PasswordHash),
		secret.IsRevoked,
		secret.CreatedAt,
		secret.ExpiresAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create secret")
	}
	return nil
}

// GetByID retrieves a secret by id.
func (p *PostgreSQLSecretRepository) GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	query := `SELECT ` + postgresSecretColumns + ` FROM secrets WHERE id = $1`
	return p.getOne(ctx, query, id)
}

// GetByTokenHash retrieves a secret by token digest without locking it.
func (p *PostgreSQLSecretRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*secretsDomain.Secret, error) {
	query := `SELECT ` + postgresSecretColumns + ` FROM secrets WHERE token_hash = $1`
	return p.getOne(ctx, query, tokenHash)
}

// GetByTokenHashForUpdate retrieves a secret by token digest and locks the row.
func (p *PostgreSQLSecretRepository) GetByTokenHashForUpdate(
	ctx context.Context,
	tokenHash string,
) (*secretsDomain.Secret, error) {
	query := `SELECT ` + postgresSecretColumns + ` FROM secrets WHERE token_hash = $1 FOR UPDATE`
	return p.getOne(ctx, query, tokenHash)
}

func (p *PostgreSQLSecretRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	var (
		secret       secretsDomain.Secret
		passwordHash sql.NullString
	)
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&secret.ID,
		&secret.OwnerID,
		&secret.TokenHash,
		&secret.Ciphertext,
		&secret.Nonce,
		&secret.MaxAccesses,
		&secret.RemainingAccesses,
		&passwordHash,
		&secret.IsRevoked,
		&secret.CreatedAt,
		&secret.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret")
	}
	secret.PasswordHash = passwordHash.String
	return &secret, nil
}

// ListByOwner returns the owner's secrets, newest first. Content columns are not read.
func (p *PostgreSQLSecretRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, max_accesses, remaining_accesses, password_hash,
			  is_revoked, created_at, expires_at
			  FROM secrets WHERE owner_id = $1
			  ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	secrets := make([]*secretsDomain.Secret, 0)
	for rows.Next() {
		var (
			secret       secretsDomain.Secret
			passwordHash sql.NullString
		)
		if err := rows.Scan(
			&secret.ID,
			&secret.OwnerID,
			&secret.MaxAccesses,
			&secret.RemainingAccesses,
			&passwordHash,
			&secret.IsRevoked,
			&secret.CreatedAt,
			&secret.ExpiresAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secret")
		}
		secret.PasswordHash = passwordHash.String
		secrets = append(secrets, &secret)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secrets")
	}
	return secrets, nil
}

// DecrementRemaining consumes one access.
func (p *PostgreSQLSecretRepository) DecrementRemaining(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE secrets SET remaining_accesses = remaining_accesses - 1 WHERE id = $1 AND remaining_accesses > 0`,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to decrement secret accesses")
	}
	return requireOneRow(result)
}

// Delete removes a secret.
func (p *PostgreSQLSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM secrets WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}
	return requireOneRow(result)
}

// Revoke marks a secret revoked. The flag is never cleared.
func (p *PostgreSQLSecretRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `UPDATE secrets SET is_revoked = TRUE WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke secret")
	}
	return requireOneRow(result)
}

// DeleteExpired removes secrets whose expiry is at or before now.
func (p *PostgreSQLSecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM secrets WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired secrets")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

// CountExpired counts what DeleteExpired would remove.
func (p *PostgreSQLSecretRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM secrets WHERE expires_at <= $1`, now).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired secrets")
	}
	return count, nil
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL Secret repository instance.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return secretsDomain.ErrSecretNotFound
	}
	return nil
}
