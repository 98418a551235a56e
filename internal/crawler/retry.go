package crawler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// retryDelay is the fixed pause between the first failure and the single
// extra attempt. There is no backoff and no further budget.
const retryDelay = 1000 * time.Millisecond

// WithRetry executes op and, on failure, executes it exactly once more after
// a fixed delay. When both attempts fail the FIRST error is returned; the
// second attempt's error is only logged at debug level.
func WithRetry[R any](ctx context.Context, logger *zap.Logger, op func(context.Context) (R, error)) (R, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	res, firstErr := op(ctx)
	if firstErr == nil {
		return res, nil
	}

	select {
	case <-ctx.Done():
		return res, firstErr
	case <-time.After(retryDelay):
	}

	TotalRetries.Inc()
	res2, secondErr := op(ctx)
	if secondErr == nil {
		return res2, nil
	}
	logger.Debug("retry attempt failed", zap.Error(secondErr))
	return res, firstErr
}
