package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Policy is a fixed-delay retry policy shared by all components that talk to
// the network. Delay is constant between attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration

	// IsRetryable decides whether an error is worth another attempt.
	// A nil predicate retries every error.
	IsRetryable func(error) bool
}

// Do runs op up to MaxAttempts times, waiting Delay between attempts. The
// wait is abandoned if ctx is cancelled. The name is only used for logging.
func (p Policy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if p.IsRetryable != nil && !p.IsRetryable(lastErr) {
			slog.Warn("retry: non-retryable error, giving up", "operation", name, "attempt", attempt, "error", lastErr)

			return lastErr
		}

		slog.Warn("retry: attempt failed", "operation", name, "attempt", attempt, "max-attempts", attempts, "error", lastErr)

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(p.Delay):
		}
	}

	slog.Error("retry: all attempts failed", "operation", name, "attempts", attempts, "error", lastErr)

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
