package search

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the waits between listing count re-fetches: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// ExponentialDelays returns n delays starting at base and doubling each time.
func ExponentialDelays(n int, base time.Duration) []time.Duration {
	if n <= 0 {
		return []time.Duration{}
	}
	delays := make([]time.Duration, n)
	d := base
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
