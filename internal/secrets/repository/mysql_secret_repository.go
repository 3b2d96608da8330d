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

const mysqlSecretColumns = `id, owner_id, token_hash, ciphertext, nonce, max_accesses, remaining_accesses,
			  password_hash, is_revoked, created_at, expires_at`

// MySQLSecretRepository implements Secret persistence for MySQL databases.
// UUIDs are stored as BINARY(16).
type MySQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret.
func (m *MySQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, m.db)

	id, err := secret.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}
	ownerID, err := secret.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner id")
	}

	query := `INSERT INTO secrets (` + mysqlSecretColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		ownerID,
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
func (m *MySQLSecretRepository) GetByID(ctx context.Context, id uuid.UUID) (*secretsDomain.Secret, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secret id")
	}
	return m.getOne(ctx, `SELECT `+mysqlSecretColumns+` FROM secrets WHERE id = ?`, idBytes)
}

// GetByTokenHash retrieves a secret by token digest without locking it.
func (m *MySQLSecretRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*secretsDomain.Secret, error) {
	return m.getOne(ctx, `SELECT `+mysqlSecretColumns+` FROM secrets WHERE token_hash = ?`, tokenHash)
}

// GetByTokenHashForUpdate retrieves a secret by token digest and locks the row.
func (m *MySQLSecretRepository) GetByTokenHashForUpdate(
	ctx context.Context,
	tokenHash string,
) (*secretsDomain.Secret, error) {
	return m.getOne(ctx, `SELECT `+mysqlSecretColumns+` FROM secrets WHERE token_hash = ? FOR UPDATE`, tokenHash)
}

func (m *MySQLSecretRepository) getOne(ctx context.Context, query string, arg any) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	var (
		secret       secretsDomain.Secret
		id, ownerID  []byte
		passwordHash sql.NullString
	)
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&id,
		&ownerID,
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

	if secret.ID, err = uuid.FromBytes(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
	}
	if secret.OwnerID, err = uuid.FromBytes(ownerID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal owner id")
	}
	secret.PasswordHash = passwordHash.String
	return &secret, nil
}

// ListByOwner returns the owner's secrets, newest first. Content columns are not read.
func (m *MySQLSecretRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal owner id")
	}

	query := `SELECT id, max_accesses, remaining_accesses, password_hash,
			  is_revoked, created_at, expires_at
			  FROM secrets WHERE owner_id = ?
			  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, ownerBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	secrets := make([]*secretsDomain.Secret, 0)
	for rows.Next() {
		var (
			secret       = secretsDomain.Secret{OwnerID: ownerID}
			id           []byte
			passwordHash sql.NullString
		)
		if err := rows.Scan(
			&id,
			&secret.MaxAccesses,
			&secret.RemainingAccesses,
			&passwordHash,
			&secret.IsRevoked,
			&secret.CreatedAt,
			&secret.ExpiresAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secret")
		}
		if secret.ID, err = uuid.FromBytes(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
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
func (m *MySQLSecretRepository) DecrementRemaining(ctx context.Context, id uuid.UUID) error {
	return m.execByID(
		ctx,
		`UPDATE secrets SET remaining_accesses = remaining_accesses - 1 WHERE id = ? AND remaining_accesses > 0`,
		id,
		"failed to decrement secret accesses",
	)
}

// Delete removes a secret.
func (m *MySQLSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.execByID(ctx, `DELETE FROM secrets WHERE id = ?`, id, "failed to delete secret")
}

// Revoke marks a secret revoked. The flag is never cleared.
func (m *MySQLSecretRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return m.execByID(ctx, `UPDATE secrets SET is_revoked = TRUE WHERE id = ?`, id, "failed to revoke secret")
}

func (m *MySQLSecretRepository) execByID(ctx context.Context, query string, id uuid.UUID, message string) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	return requireOneRow(result)
}

// DeleteExpired removes secrets whose expiry is at or before now.
func (m *MySQLSecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM secrets WHERE expires_at <= ?`, now)
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
func (m *MySQLSecretRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM secrets WHERE expires_at <= ?`, now).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired secrets")
	}
	return count, nil
}

// NewMySQLSecretRepository creates a new MySQL Secret repository instance.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}
