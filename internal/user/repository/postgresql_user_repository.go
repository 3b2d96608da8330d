// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/user/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user. A duplicate email returns ErrUserAlreadyExists.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, auth_hash_digest, vault_key_blob, vault_key_iv, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.AuthHashDigest,
		user.VaultKeyBlob,
		user.VaultKeyIV,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, auth_hash_digest, vault_key_blob, vault_key_iv, created_at, updated_at
			  FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by email. Emails match exactly as stored.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, auth_hash_digest, vault_key_blob, vault_key_iv, created_at, updated_at
			  FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgreSQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.AuthHashDigest,
		&user.VaultKeyBlob,
		&user.VaultKeyIV,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	return &user, nil
}

// UpdateCredentials overwrites the auth hash digest and the vault key material in a
// single statement. The write only applies while the stored digest still equals
// previousDigest; otherwise ErrIncorrectAuthHash is returned.
func (r *PostgreSQLUserRepository) UpdateCredentials(
	ctx context.Context,
	user *domain.User,
	previousDigest string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET auth_hash_digest = $1, vault_key_blob = $2, vault_key_iv = $3, updated_at = $4
			  WHERE id = $5 AND auth_hash_digest = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.AuthHashDigest,
		user.VaultKeyBlob,
		user.VaultKeyIV,
		user.UpdatedAt,
		user.ID,
		previousDigest,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user credentials")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows != 1 {
		return domain.ErrIncorrectAuthHash
	}
	return nil
}

// LockByID locks the user row until the surrounding transaction ends.
func (r *PostgreSQLUserRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	var locked uuid.UUID
	err := querier.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return apperrors.Wrap(err, "failed to lock user")
	}
	return nil
}

// Delete removes a user. Vault items, refresh tokens and secrets go with it
// through ON DELETE CASCADE.
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
