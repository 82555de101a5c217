package wait

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/internal/clockwork"
)

const (
	// DefaultTimeout is the polling deadline used when no per-call timeout
	// is given.
	DefaultTimeout = 10 * time.Second
	// DefaultInterval is the pause between evaluations used when no
	// per-call interval is given.
	DefaultInterval = 250 * time.Millisecond
)

// Predicate is a zero-argument condition. An error result is captured and
// polling continues; it is not fatal mid-poll.
type Predicate func() (bool, error)

// Waiter evaluates conditions with configurable polling defaults. The zero
// value is not usable; construct with NewWaiter.
type Waiter struct {
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
	clock    clockwork.Clock
}

// WaiterOption configures a Waiter.
type WaiterOption func(*Waiter)

// WithDefaultTimeout sets the default polling deadline.
func WithDefaultTimeout(d time.Duration) WaiterOption {
	return func(w *Waiter) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithDefaultInterval sets the default pause between evaluations.
func WithDefaultInterval(d time.Duration) WaiterOption {
	return func(w *Waiter) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithLogger sets the logger for wait start/end events. Absent a logger,
// waiting behaves identically and stays silent.
func WithLogger(l *slog.Logger) WaiterOption {
	return func(w *Waiter) {
		w.logger = l
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(c clockwork.Clock) WaiterOption {
	return func(w *Waiter) {
		if c != nil {
			w.clock = c
		}
	}
}

// NewWaiter creates a Waiter with the given options applied over defaults.
func NewWaiter(opts ...WaiterOption) *Waiter {
	w := &Waiter{
		timeout:  DefaultTimeout,
		interval: DefaultInterval,
		clock:    clockwork.System(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// options carries the per-call polling parameters.
type options struct {
	timeout     time.Duration
	interval    time.Duration
	backoff     float64
	maxInterval time.Duration
	stableFor   time.Duration
	message     string
}

// Option configures a single wait call.
type Option func(*options)

// WithTimeout sets the deadline for this call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithInterval sets the pause between evaluations for this call.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithBackoff grows the interval by factor after each evaluation, capped at
// max. A factor of 1 or less disables backoff.
func WithBackoff(factor float64, max time.Duration) Option {
	return func(o *options) {
		o.backoff = factor
		o.maxInterval = max
	}
}

// WithMessage names the condition in timeout errors and log events.
func WithMessage(msg string) Option {
	return func(o *options) {
		o.message = msg
	}
}

func (w *Waiter) newOptions(opts []Option) options {
	o := options{
		timeout:  w.timeout,
		interval: w.interval,
		message:  "condition",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Until polls cond until it returns true. On timeout the last captured
// evaluation error is returned if there was one, otherwise a KindTimeout
// error naming the condition and elapsed time.
func (w *Waiter) Until(ctx context.Context, cond Predicate, opts ...Option) error {
	return w.run(ctx, cond, w.newOptions(opts))
}

// While polls cond until it first returns false. An evaluation error counts
// as "still true" and is captured. On timeout the captured error wins over
// the generic "condition remained true" timeout.
func (w *Waiter) While(ctx context.Context, cond Predicate, opts ...Option) error {
	o := w.newOptions(opts)
	if o.message == "condition" {
		o.message = "condition remained true"
	}
	inverted := func() (bool, error) {
		ok, err := cond()
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
	return w.run(ctx, inverted, o)
}

// UntilStable polls cond until it has held continuously for stableFor. Any
// false observation resets the stability window, so total latency is at
// least time-to-first-true plus stableFor.
func (w *Waiter) UntilStable(ctx context.Context, cond Predicate, stableFor time.Duration, opts ...Option) error {
	o := w.newOptions(opts)
	o.stableFor = stableFor
	return w.run(ctx, cond, o)
}

// UntilValue polls fn until it reports ok and returns the produced value.
// Error and timeout semantics match Waiter.Until.
func UntilValue[T any](ctx context.Context, w *Waiter, fn func() (T, bool, error), opts ...Option) (T, error) {
	var captured T
	err := w.run(ctx, func() (bool, error) {
		v, ok, err := fn()
		if err != nil {
			return false, err
		}
		if ok {
			captured = v
		}
		return ok, nil
	}, w.newOptions(opts))
	if err != nil {
		var zero T
		return zero, err
	}
	return captured, nil
}

// run is the polling core. The loop carries lastErr and an explicit
// outcome so the "captured error beats generic timeout" rule is a branch,
// not stack unwinding. lastErr is never cleared by a later clean false.
func (w *Waiter) run(ctx context.Context, eval Predicate, o options) error {
	start := w.clock.Now()
	interval := o.interval
	var lastErr error
	var trueSince time.Time // zero while the condition is not currently true

	w.logStart(o)

	for {
		ok, err := eval()
		if err != nil {
			lastErr = err
			ok = false
		}

		now := w.clock.Now()
		if ok {
			if o.stableFor <= 0 {
				w.logEnd(o, now.Sub(start), nil)
				return nil
			}
			if trueSince.IsZero() {
				trueSince = now
			}
			if now.Sub(trueSince) >= o.stableFor {
				w.logEnd(o, now.Sub(start), nil)
				return nil
			}
		} else {
			trueSince = time.Time{}
		}

		elapsed := now.Sub(start)
		if elapsed >= o.timeout {
			if lastErr != nil {
				w.logEnd(o, elapsed, lastErr)
				return lastErr
			}
			err := element.NewTimeout(fmt.Sprintf("%s not satisfied after %s", o.message, elapsed.Round(time.Millisecond)), nil)
			w.logEnd(o, elapsed, err)
			return err
		}

		if err := w.clock.Sleep(ctx, interval); err != nil {
			return err
		}
		if o.backoff > 1 {
			next := time.Duration(float64(interval) * o.backoff)
			if o.maxInterval > 0 && next > o.maxInterval {
				next = o.maxInterval
			}
			interval = next
		}
	}
}

func (w *Waiter) logStart(o options) {
	if w.logger == nil {
		return
	}
	w.logger.Debug("wait start", "condition", o.message, "timeout", o.timeout, "interval", o.interval)
}

func (w *Waiter) logEnd(o options, elapsed time.Duration, err error) {
	if w.logger == nil {
		return
	}
	if err != nil {
		w.logger.Debug("wait failed", "condition", o.message, "elapsed", elapsed, "error", err)
		return
	}
	w.logger.Debug("wait satisfied", "condition", o.message, "elapsed", elapsed)
}
