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

// MySQLUserRepository handles user persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user. A duplicate email returns ErrUserAlreadyExists.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, auth_hash_digest, vault_key_blob, vault_key_iv, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
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
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT id, email, auth_hash_digest, vault_key_blob, vault_key_iv, created_at, updated_at
			  FROM users WHERE id = ?`
	return r.getOne(ctx, query, uuidBytes)
}

// GetByEmail retrieves a user by email. The column uses a binary collation so
// the comparison is case-sensitive.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, auth_hash_digest, vault_key_blob, vault_key_iv, created_at, updated_at
			  FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

func (r *MySQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
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

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

// UpdateCredentials overwrites the auth hash digest and the vault key material,
// guarded by previousDigest.
func (r *MySQLUserRepository) UpdateCredentials(
	ctx context.Context,
	user *domain.User,
	previousDigest string,
) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE users SET auth_hash_digest = ?, vault_key_blob = ?, vault_key_iv = ?, updated_at = ?
			  WHERE id = ? AND auth_hash_digest = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.AuthHashDigest,
		user.VaultKeyBlob,
		user.VaultKeyIV,
		user.UpdatedAt,
		uuidBytes,
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
func (r *MySQLUserRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	var locked []byte
	err = querier.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ? FOR UPDATE`, uuidBytes).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return apperrors.Wrap(err, "failed to lock user")
	}
	return nil
}

// Delete removes a user and, through foreign keys, everything the user owns.
func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, uuidBytes)
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
