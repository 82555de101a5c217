package wait

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/pkg/testsupport"
)

func newTestWaiter(clock *testsupport.ManualClock) *Waiter {
	return NewWaiter(
		WithClock(clock),
		WithDefaultTimeout(200*time.Millisecond),
		WithDefaultInterval(100*time.Millisecond),
	)
}

func TestUntilImmediate(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	calls := 0
	err := w.Until(context.Background(), func() (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("Until() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("condition evaluated %d times, want 1", calls)
	}
	if len(clock.Sleeps()) != 0 {
		t.Errorf("unexpected sleeps: %v", clock.Sleeps())
	}
}

func TestUntilEventually(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	calls := 0
	err := w.Until(context.Background(), func() (bool, error) {
		calls++
		return calls >= 2, nil
	})
	if err != nil {
		t.Fatalf("Until() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("condition evaluated %d times, want 2", calls)
	}
	if sleeps := clock.Sleeps(); len(sleeps) != 1 || sleeps[0] != 100*time.Millisecond {
		t.Errorf("sleeps = %v, want [100ms]", sleeps)
	}
}

func TestUntilTimeout(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	calls := 0
	err := w.Until(context.Background(), func() (bool, error) {
		calls++
		return false, nil
	}, WithMessage("login button visible"))

	if !element.IsKind(err, element.KindTimeout) {
		t.Fatalf("Until() error = %v, want a timeout", err)
	}
	if !strings.Contains(err.Error(), "login button visible") {
		t.Errorf("timeout error %q does not name the condition", err)
	}
	// timeout 200ms, interval 100ms: evaluations at 0, 100 and 200ms.
	if calls != 3 {
		t.Errorf("condition evaluated %d times, want 3", calls)
	}
	if sleeps := clock.Sleeps(); len(sleeps) != 2 {
		t.Errorf("sleeps = %v, want two 100ms pauses", sleeps)
	}
}

func TestUntilReturnsCapturedError(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	captured := errors.New("stale element reference")
	calls := 0
	err := w.Until(context.Background(), func() (bool, error) {
		calls++
		if calls == 1 {
			return false, captured
		}
		return false, nil
	})

	// A later clean false must not erase the captured error.
	if !errors.Is(err, captured) {
		t.Fatalf("Until() error = %v, want the captured evaluation error", err)
	}
}

func TestUntilPerCallOverrides(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	calls := 0
	err := w.Until(context.Background(), func() (bool, error) {
		calls++
		return false, nil
	}, WithTimeout(100*time.Millisecond), WithInterval(50*time.Millisecond))

	if !element.IsKind(err, element.KindTimeout) {
		t.Fatalf("Until() error = %v, want a timeout", err)
	}
	// timeout 100ms, interval 50ms: evaluations at 0, 50 and 100ms.
	if calls != 3 {
		t.Errorf("condition evaluated %d times, want 3", calls)
	}
}

func TestUntilBackoff(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	err := w.Until(context.Background(), func() (bool, error) {
		return false, nil
	}, WithTimeout(time.Second), WithInterval(100*time.Millisecond), WithBackoff(2.0, 400*time.Millisecond))

	if !element.IsKind(err, element.KindTimeout) {
		t.Fatalf("Until() error = %v, want a timeout", err)
	}
	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		400 * time.Millisecond,
	}
	got := clock.Sleeps()
	if len(got) != len(want) {
		t.Fatalf("sleeps = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUntilContextCanceled(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Until(ctx, func() (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Until() error = %v, want context.Canceled", err)
	}
}

func TestWhile(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	calls := 0
	err := w.While(context.Background(), func() (bool, error) {
		calls++
		return calls < 3, nil
	})
	if err != nil {
		t.Fatalf("While() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("condition evaluated %d times, want 3", calls)
	}
}

func TestWhileTimeout(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	err := w.While(context.Background(), func() (bool, error) {
		return true, nil
	})
	if !element.IsKind(err, element.KindTimeout) {
		t.Fatalf("While() error = %v, want a timeout", err)
	}
	if !strings.Contains(err.Error(), "condition remained true") {
		t.Errorf("timeout error %q lacks the While default message", err)
	}
}

func TestWhileCapturesError(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	captured := errors.New("spinner probe failed")
	err := w.While(context.Background(), func() (bool, error) {
		return false, captured
	})
	if !errors.Is(err, captured) {
		t.Fatalf("While() error = %v, want the captured evaluation error", err)
	}
}

func TestUntilStable(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := NewWaiter(
		WithClock(clock),
		WithDefaultTimeout(time.Second),
		WithDefaultInterval(50*time.Millisecond),
	)

	calls := 0
	err := w.UntilStable(context.Background(), func() (bool, error) {
		calls++
		return calls >= 4, nil
	}, 150*time.Millisecond)
	if err != nil {
		t.Fatalf("UntilStable() error: %v", err)
	}
	// True from the 4th evaluation at t=150ms; stability holds at t=300ms,
	// the 7th evaluation.
	if calls != 7 {
		t.Errorf("condition evaluated %d times, want 7", calls)
	}
}

func TestUntilStableResetsOnFlicker(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := NewWaiter(
		WithClock(clock),
		WithDefaultTimeout(time.Second),
		WithDefaultInterval(50*time.Millisecond),
	)

	// False on the 4th evaluation interrupts the first stability window.
	results := []bool{false, true, true, false, true, true, true}
	calls := 0
	err := w.UntilStable(context.Background(), func() (bool, error) {
		calls++
		if calls <= len(results) {
			return results[calls-1], nil
		}
		return true, nil
	}, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("UntilStable() error: %v", err)
	}
	// The window restarts at the 5th evaluation (t=200ms) and completes at
	// t=300ms, the 7th evaluation.
	if calls != 7 {
		t.Errorf("condition evaluated %d times, want 7", calls)
	}
}

func TestUntilStableTimeout(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	// Always true, but the window never fits inside the deadline.
	err := w.UntilStable(context.Background(), func() (bool, error) {
		return true, nil
	}, time.Second)
	if !element.IsKind(err, element.KindTimeout) {
		t.Fatalf("UntilStable() error = %v, want a timeout", err)
	}
}

func TestUntilValue(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	calls := 0
	got, err := UntilValue(context.Background(), w, func() (string, bool, error) {
		calls++
		if calls < 2 {
			return "", false, nil
		}
		return "ready", true, nil
	})
	if err != nil {
		t.Fatalf("UntilValue() error: %v", err)
	}
	if got != "ready" {
		t.Errorf("UntilValue() = %q, want %q", got, "ready")
	}
}

func TestUntilValueTimeout(t *testing.T) {
	clock := testsupport.NewManualClock()
	w := newTestWaiter(clock)

	captured := element.NewNotFound("no element matches css=#toast", nil)
	got, err := UntilValue(context.Background(), w, func() (string, bool, error) {
		return "", false, captured
	})
	if !errors.Is(err, captured) {
		t.Fatalf("UntilValue() error = %v, want the captured error", err)
	}
	if got != "" {
		t.Errorf("UntilValue() = %q on failure, want zero value", got)
	}
}

func TestPoll(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), func() (bool, error) {
		calls++
		return calls >= 2, nil
	}, 500*time.Millisecond, time.Millisecond)
	if err != nil {
		t.Fatalf("Poll() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("condition evaluated %d times, want 2", calls)
	}
}

func TestPollTimeout(t *testing.T) {
	err := Poll(context.Background(), func() (bool, error) {
		return false, nil
	}, 10*time.Millisecond, time.Millisecond)
	if !element.IsKind(err, element.KindTimeout) {
		t.Fatalf("Poll() error = %v, want a timeout", err)
	}
}

func TestPollReturnsCapturedError(t *testing.T) {
	captured := errors.New("probe failed")
	err := Poll(context.Background(), func() (bool, error) {
		return false, captured
	}, 10*time.Millisecond, time.Millisecond)
	if !errors.Is(err, captured) {
		t.Fatalf("Poll() error = %v, want the captured error", err)
	}
}
