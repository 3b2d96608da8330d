// Package repository implements refresh-token ledger persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
)

// PostgreSQLRefreshTokenRepository implements refresh token persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new refresh token record.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, revoked, issued_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
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

// GetByTokenHash retrieves a refresh token by digest. Returns ErrRefreshTokenNotFound
// when no record matches.
func (p *PostgreSQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, token_hash, revoked, issued_at, expires_at
			  FROM refresh_tokens WHERE token_hash = $1`

	var token authDomain.RefreshToken
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
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
	return &token, nil
}

// DeleteByTokenHash removes the record with the given digest. Returns
// ErrRefreshTokenNotFound when nothing was deleted, which is how a concurrent
// consumer of the same token loses.
func (p *PostgreSQLRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh token")
	}
	return requireDeleted(result)
}

// DeleteExpired removes tokens that are past expiry or revoked.
func (p *PostgreSQLRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= $1 OR revoked = TRUE`,
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
func (p *PostgreSQLRefreshTokenRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM refresh_tokens WHERE expires_at <= $1 OR revoked = TRUE`,
		now,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
	}
	return count, nil
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQL refresh token repository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}

func requireDeleted(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return authDomain.ErrRefreshTokenNotFound
	}
	return nil
}
