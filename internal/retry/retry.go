package retry

import (
	"context"
	"time"
)

// Policy is a fixed-delay retry policy. The catalog fetch is a low-frequency
// background sync, so a flat delay is used rather than exponential backoff.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Default matches the storefront's catalog fetch behavior: three attempts,
// two seconds apart.
var Default = Policy{MaxAttempts: 3, Delay: 2 * time.Second}

// Do runs op until it succeeds, the policy's attempts are exhausted, or the
// context is canceled while waiting between attempts. It returns the last
// error seen.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && policy.Delay > 0 {
			timer := time.NewTimer(policy.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if lastErr = op(ctx); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
