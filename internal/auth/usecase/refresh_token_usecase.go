package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/zkvault/zkvault/internal/auth/domain"
	"github.com/zkvault/zkvault/internal/database"
	apperrors "github.com/zkvault/zkvault/internal/errors"
	"github.com/zkvault/zkvault/internal/hashing"
)

type refreshTokenLedger struct {
	txManager  database.TxManager
	repo       RefreshTokenRepository
	tokens     hashing.TokenGenerator
	expiration time.Duration
}

func (l *refreshTokenLedger) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	plainToken, tokenHash, err := l.tokens.GenerateToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	token := &authDomain.RefreshToken{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		TokenHash: tokenHash,
		Revoked:   false,
		IssuedAt:  now,
		ExpiresAt: now.Add(l.expiration),
	}

	if err := l.repo.Create(ctx, token); err != nil {
		return "", err
	}
	return plainToken, nil
}

func (l *refreshTokenLedger) Validate(ctx context.Context, rawToken string) (uuid.UUID, error) {
	tokenHash := l.tokens.DigestToken(rawToken)

	token, err := l.repo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return uuid.Nil, err
	}

	if !token.IsUsable(time.Now().UTC()) {
		// Lazy cleanup; the sweep removes it later if this fails.
		_ = l.repo.DeleteByTokenHash(ctx, tokenHash)
		return uuid.Nil, authDomain.ErrRefreshTokenNotFound
	}
	return token.UserID, nil
}

func (l *refreshTokenLedger) RotateOnUse(ctx context.Context, rawToken string) (string, uuid.UUID, error) {
	tokenHash := l.tokens.DigestToken(rawToken)

	var (
		newRawToken string
		userID      uuid.UUID
		unusable    bool
	)

	err := l.txManager.WithTx(ctx, func(ctx context.Context) error {
		token, err := l.repo.GetByTokenHash(ctx, tokenHash)
		if err != nil {
			return err
		}

		// The delete is the claim: of two concurrent refreshes only one removes the row.
		if err := l.repo.DeleteByTokenHash(ctx, tokenHash); err != nil {
			return err
		}

		if !token.IsUsable(time.Now().UTC()) {
			unusable = true
			return nil
		}

		newRawToken, err = l.Issue(ctx, token.UserID)
		if err != nil {
			return err
		}
		userID = token.UserID
		return nil
	})
	if err != nil {
		return "", uuid.Nil, apperrors.Transient(err)
	}
	if unusable {
		return "", uuid.Nil, authDomain.ErrRefreshTokenNotFound
	}
	return newRawToken, userID, nil
}

func (l *refreshTokenLedger) Revoke(ctx context.Context, rawToken string) error {
	err := l.repo.DeleteByTokenHash(ctx, l.tokens.DigestToken(rawToken))
	if err != nil && !apperrors.Is(err, authDomain.ErrRefreshTokenNotFound) {
		return err
	}
	return nil
}

func (l *refreshTokenLedger) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	now := time.Now().UTC()
	if dryRun {
		return l.repo.CountExpired(ctx, now)
	}
	return l.repo.DeleteExpired(ctx, now)
}

// NewRefreshTokenLedger creates a RefreshTokenLedger whose tokens live for expiration.
func NewRefreshTokenLedger(
	txManager database.TxManager,
	repo RefreshTokenRepository,
	tokens hashing.TokenGenerator,
	expiration time.Duration,
) RefreshTokenLedger {
	return &refreshTokenLedger{
		txManager:  txManager,
		repo:       repo,
		tokens:     tokens,
		expiration: expiration,
	}
}
