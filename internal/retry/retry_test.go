package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"clipscribe/internal/services"
)

func classifyServices(err error) Classification {
	if services.IsTerminal(err) {
		return Terminal
	}
	return Retryable
}

func TestDoExhaustsExactlyMaxAttempts(t *testing.T) {
	var delays []time.Duration
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Classify:    classifyServices,
		sleep: func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	attempts := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		attempts++
		return services.Transient("network timeout", nil)
	})

	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if !errors.Is(err, ErrMaxRetries) {
		t.Fatalf("expected ErrMaxRetries, got %v", err)
	}

	// Backoff follows base*2^k: 1s, 2s between the three attempts.
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Fatalf("delays = %v, want %v", delays, want)
		}
		if i > 0 && delays[i] < delays[i-1] {
			t.Fatalf("delays must be non-decreasing: %v", delays)
		}
	}
}

func TestDoTerminalShortCircuits(t *testing.T) {
	policy := Policy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		Classify:    classifyServices,
		sleep: func(context.Context, time.Duration) error {
			t.Fatal("terminal failure must not back off")
			return nil
		},
	}

	attempts := 0
	terminal := services.Terminal("Video is private")
	err := policy.Do(context.Background(), func(context.Context) error {
		attempts++
		return terminal
	})

	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
	if !errors.Is(err, services.ErrTerminal) {
		t.Fatalf("expected original terminal error, got %v", err)
	}
	if errors.Is(err, ErrMaxRetries) {
		t.Fatalf("terminal failure must not be reported as exhaustion: %v", err)
	}
}

func TestDoSucceedsAfterRetry(t *testing.T) {
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Classify:    classifyServices,
		sleep:       func(context.Context, time.Duration) error { return nil },
	}

	attempts := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 2 {
			return services.Transient("flaky", nil)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestDoStopsWhenContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Classify:    classifyServices,
		sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	attempts := 0
	err := policy.Do(ctx, func(context.Context) error {
		attempts++
		return services.Transient("slow", nil)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestDoDefaultsToSingleAttempt(t *testing.T) {
	attempts := 0
	err := Policy{}.Do(context.Background(), func(context.Context) error {
		attempts++
		return errors.New("boom")
	})
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
	if !errors.Is(err, ErrMaxRetries) {
		t.Fatalf("expected ErrMaxRetries, got %v", err)
	}
}

func TestNilClassifierRetriesEverything(t *testing.T) {
	attempts := 0
	policy := Policy{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		sleep:       func(context.Context, time.Duration) error { return nil },
	}
	_ = policy.Do(context.Background(), func(context.Context) error {
		attempts++
		return services.Terminal("even this retries without a classifier")
	})
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}
