// Package clockwork provides the time source used by the cache, wait and
// retry packages so their timing behavior is testable.
package clockwork

import (
	"context"
	"time"
)

// Clock supplies the current time and blocking sleeps. Sleep returns early
// with the context error when the context is canceled.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// System returns the wall-clock backed Clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
