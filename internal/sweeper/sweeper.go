// Package sweeper periodically removes rows that reached a terminal state:
// expired or revoked refresh tokens and expired secrets.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Cleaner deletes, or with dryRun only counts, rows past their terminal condition.
type Cleaner interface {
	CleanupExpired(ctx context.Context, dryRun bool) (int64, error)
}

// Target names a Cleaner for logs and reports.
type Target struct {
	Name    string
	Cleaner Cleaner
}

// Result is the outcome of sweeping a single target.
type Result struct {
	Name   string `json:"name"`
	Count  int64  `json:"count"`
	DryRun bool   `json:"dry_run"`
}

// Sweeper runs every target on a fixed interval.
type Sweeper struct {
	interval time.Duration
	targets  []Target
	logger   *slog.Logger
}

// New creates a Sweeper.
func New(interval time.Duration, logger *slog.Logger, targets ...Target) *Sweeper {
	return &Sweeper{
		interval: interval,
		targets:  targets,
		logger:   logger,
	}
}

// Start sweeps on every tick until ctx is cancelled. A failed sweep is logged
// and retried on the next tick.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("starting expired row sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping expired row sweeper")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx, false); err != nil {
				s.logger.Error("failed to sweep expired rows", slog.Any("error", err))
			}
		}
	}
}

// Sweep runs every target once. A failing target does not stop the others;
// their errors are joined.
func (s *Sweeper) Sweep(ctx context.Context, dryRun bool) ([]Result, error) {
	results := make([]Result, 0, len(s.targets))
	var errs []error

	for _, target := range s.targets {
		count, err := target.Cleaner.CleanupExpired(ctx, dryRun)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if count > 0 || dryRun {
			s.logger.Info("swept expired rows",
				slog.String("target", target.Name),
				slog.Int64("count", count),
				slog.Bool("dry_run", dryRun),
			)
		}
		results = append(results, Result{Name: target.Name, Count: count, DryRun: dryRun})
	}

	return results, errors.Join(errs...)
}
