// Package retry wraps a single fallible operation with bounded retries and
// exponential backoff. Failures are classified as retryable or terminal by a
// caller-supplied classifier; terminal failures return immediately and the
// attempt ceiling is never exceeded.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Classification decides what happens after a failed attempt.
type Classification int

const (
	// Retryable failures are attempted again after a backoff interval.
	Retryable Classification = iota
	// Terminal failures are returned immediately without further attempts.
	Terminal
)

// ErrMaxRetries marks a failure produced by exhausting the attempt ceiling.
var ErrMaxRetries = errors.New("max retries exceeded")

// Policy configures the retry behavior. The backoff interval before retry
// k (0-based attempt index) is BaseDelay * 2^k; no jitter is applied.
type Policy struct {
	// MaxAttempts is the total attempt ceiling, including the first try.
	// Values below 1 behave as 1.
	MaxAttempts int
	// BaseDelay seeds the exponential backoff.
	BaseDelay time.Duration
	// Classify maps a failure to Retryable or Terminal. A nil classifier
	// treats every failure as retryable.
	Classify func(error) Classification

	// sleep is swappable so tests can observe backoff without waiting.
	sleep func(context.Context, time.Duration) error
}

// Do executes op under the policy. It returns nil on the first success, the
// original error on a terminal failure, the context error if the context is
// done while backing off, and an ErrMaxRetries-wrapped error once attempts
// are exhausted.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if p.Classify != nil && p.Classify(err) == Terminal {
			return err
		}
		if attempt == attempts-1 {
			break
		}
		if err := sleep(ctx, p.BaseDelay<<uint(attempt)); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrMaxRetries, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
