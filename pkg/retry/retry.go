// Package retry provides a bounded retry policy for transient database
// failures. Serialization conflicts and statement timeouts are retried
// with linear backoff; every other error surfaces immediately.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
)

// Policy describes how many attempts to make and how long to wait
// between them. Backoff is linear: attempt N waits N*Delay.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy is the policy applied at the persistence boundary.
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	Delay:       100 * time.Millisecond,
}

// Transient pq error codes:
// 40001 serialization_failure, 40P01 deadlock_detected,
// 57014 query_canceled (statement timeout).
var transientCodes = map[string]struct{}{
	"40001": {},
	"40P01": {},
	"57014": {},
}

// IsTransient reports whether err is a transient database error worth
// retrying.
func IsTransient(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		_, ok := transientCodes[string(pqErr.Code)]
		return ok
	}
	return false
}

// Do runs fn up to p.MaxAttempts times, retrying only transient errors.
// Context cancellation stops the loop between attempts.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * p.Delay):
		}
	}

	return lastErr
}
