// Package ratelimit throttles repeated attempts per key within a fixed window.
package ratelimit

import (
	"context"
	"time"

	"notekeeper-be/internal/repository/contract"
)

type ILimiter interface {
	// Acquire takes one attempt from key's window and reports whether it was
	// within the limit.
	Acquire(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type FailureLimiter struct {
	attempts    contract.AttemptRepository
	namespace   string
	maxAttempts int
	window      time.Duration
}

func NewFailureLimiter(attempts contract.AttemptRepository, namespace string, maxAttempts int, window time.Duration) *FailureLimiter {
	return &FailureLimiter{
		attempts:    attempts,
		namespace:   namespace,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *FailureLimiter) key(key string) string {
	return l.namespace + ":" + key
}

// Acquire counts through the store's atomic increment, so concurrent callers
// each see a distinct count and at most maxAttempts of them are admitted per window.
func (l *FailureLimiter) Acquire(ctx context.Context, key string) (bool, error) {
	n, err := l.attempts.Increment(ctx, l.key(key), l.window)
	if err != nil {
		return false, err
	}
	return n <= l.maxAttempts, nil
}

func (l *FailureLimiter) Reset(ctx context.Context, key string) error {
	return l.attempts.Reset(ctx, l.key(key))
}
