package contract

import (
	"context"
	"time"
)

// AttemptRepository keeps short-lived counters, e.g. failed sign-ins per email.
type AttemptRepository interface {
	// Increment adds one and returns the new count. The window starts on the
	// first increment and is not extended by later ones.
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}
