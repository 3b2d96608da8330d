package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// MySQLRefreshTokenRepository implements refresh token persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new refresh token record.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}
	userID, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, revoked, issued_at, expires_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		token.TokenHash,
		token.Revoked,
		token.IssuedAt,
		token.ExpiresAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByTokenHash retrieves a refresh token by digest.
func (m *MySQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, token_hash, revoked, issued_at, expires_at
			  FROM refresh_tokens WHERE token_hash = ?`

	var (
		token      authDomain.RefreshToken
		id, userID []byte
	)
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&id,
		&userID,
		&token.TokenHash,
		&token.Revoked,
		&token.IssuedAt,
		&token.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token")
	}

	if token.ID, err = uuid.FromBytes(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}
	if token.UserID, err = uuid.FromBytes(userID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	return &token, nil
}

// DeleteByTokenHash removes the record with the given digest.
func (m *MySQLRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh token")
	}
	return requireDeleted(result)
}

// DeleteExpired removes tokens that are past expiry or revoked.
func (m *MySQLRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ? OR revoked = TRUE`,
		now,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

// CountExpired counts what DeleteExpired would remove.
func (m *MySQLRefreshTokenRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM refresh_tokens WHERE expires_at <= ? OR revoked = TRUE`,
		now,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
	}
	return count, nil
}

// NewMySQLRefreshTokenRepository creates a new MySQL refresh token repository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}
