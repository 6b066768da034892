package processor

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/config"
)

// RetryStatusClient retries status queries with exponential backoff. Only the
// background reconciler uses it; request paths call the processor once.
type RetryStatusClient struct {
	inner      application.StatusQuerier
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryStatusClient(inner application.StatusQuerier, cfg config.RetryConfig) *RetryStatusClient {
	maxRetries := int(cfg.MaxRetries)
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryStatusClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: maxRetries,
	}
}

// QueryTransactionStatus with retry logic
func (r *RetryStatusClient) QueryTransactionStatus(ctx context.Context, transactionToken string) (*application.TransactionStatusResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.TransactionStatusResponse, error) {
			return r.inner.QueryTransactionStatus(ctx, transactionToken)
		},
	)
}

// Generic retry helper
func retry[T any](r *RetryStatusClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !application.IsRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			timer := time.NewTimer(r.backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Backoff calculation with exponential delay and jitter
func (r *RetryStatusClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if base <= 0 {
		return 0
	}

	jitter := time.Duration(rand.Int63n(int64(base)/2 + 1))

	return base + jitter
}
