package usecase

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	leaksDomain "github.com/zkvault/zkvault/internal/leaks/domain"
)

type leakUseCase struct {
	emailProviders    []Provider
	passwordProviders []Provider
	logger            *slog.Logger
}

func (l *leakUseCase) CheckEmail(ctx context.Context, email string) (bool, error) {
	return l.query(ctx, l.emailProviders, strings.TrimSpace(email))
}

func (l *leakUseCase) CheckPassword(ctx context.Context, sha1Hex string) (bool, error) {
	return l.query(ctx, l.passwordProviders, strings.ToUpper(strings.TrimSpace(sha1Hex)))
}

// query never lets one provider's failure cancel or fail another.
func (l *leakUseCase) query(ctx context.Context, providers []Provider, identifier string) (bool, error) {
	results := make([]leaksDomain.Result, len(providers))

	var g errgroup.Group
	for i, provider := range providers {
		g.Go(func() error {
			found, err := provider.Check(ctx, identifier)
			if err != nil {
				l.logger.Warn("leak provider unavailable",
					slog.String("provider", provider.Name()),
					slog.Any("error", err))
				return nil
			}
			results[i] = leaksDomain.Result{Available: true, Found: found}
			return nil
		})
	}
	_ = g.Wait()

	return leaksDomain.Combine(results)
}

// NewLeakUseCase creates a LeakUseCase.
func NewLeakUseCase(emailProviders, passwordProviders []Provider, logger *slog.Logger) LeakUseCase {
	return &leakUseCase{
		emailProviders:    emailProviders,
		passwordProviders: passwordProviders,
		logger:            logger,
	}
}
