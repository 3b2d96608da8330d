package usecase

import (
	"context"
	"time"

	"github.com/zkvault/zkvault/internal/metrics"
)

// leakUseCaseWithMetrics decorates LeakUseCase with metrics instrumentation.
type leakUseCaseWithMetrics struct {
	next    LeakUseCase
	metrics metrics.BusinessMetrics
}

// NewLeakUseCaseWithMetrics wraps a LeakUseCase with metrics recording.
func NewLeakUseCaseWithMetrics(useCase LeakUseCase, m metrics.BusinessMetrics) LeakUseCase {
	return &leakUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (l *leakUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, l.metrics, "leaks", operation, start, err)
}

// CheckEmail records metrics for email breach lookups.
func (l *leakUseCaseWithMetrics) CheckEmail(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	found, err := l.next.CheckEmail(ctx, email)
	l.record(ctx, "leak_check_email", start, err)
	return found, err
}

// CheckPassword records metrics for password breach lookups.
func (l *leakUseCaseWithMetrics) CheckPassword(ctx context.Context, sha1Hex string) (bool, error) {
	start := time.Now()
	found, err := l.next.CheckPassword(ctx, sha1Hex)
	l.record(ctx, "leak_check_password", start, err)
	return found, err
}
