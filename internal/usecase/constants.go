package usecase

import (
	"context"
	"time"
)

const (
	// DefaultTransactionTimeout bounds a single store transaction so a
	// stalled caller cannot hold row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is the default replay-detection window.
	IdempotencyKeyTTL = 24 * time.Hour

	// BalanceCacheTTL bounds balance staleness when an invalidation is
	// lost. Writes invalidate eagerly, so hits are usually fresh.
	BalanceCacheTTL = 10 * time.Second
)

// txContext bounds a single store transaction with
// DefaultTransactionTimeout unless the caller already set a deadline.
func txContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, DefaultTransactionTimeout)
}
