package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-element-resolver/element"
)

// Poll is the reduced-surface sibling of Waiter for boolean existence and
// enablement checks: one predicate, a timeout and an interval, no backoff or
// stability. The error precedence matches Waiter.Until: if the predicate
// ever returned an error, that error is returned on timeout; a predicate
// that only ever returned false yields a KindTimeout error.
func Poll(ctx context.Context, cond Predicate, timeout, interval time.Duration) error {
	start := time.Now()
	var lastErr error

	for {
		ok, err := cond()
		if err != nil {
			lastErr = err
		} else if ok {
			return nil
		}

		if time.Since(start) >= timeout {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return element.NewTimeout(fmt.Sprintf("wait expired after %s", time.Since(start).Round(time.Millisecond)), nil)
}
