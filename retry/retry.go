package retry

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/internal/clockwork"
)

// Config holds the retry strategy for an Executor.
type Config struct {
	// MaxAttempts is the total number of invocations, including the first.
	// Must be at least 1.
	MaxAttempts int

	// BaseDelay is the sleep before the second attempt. Must not be
	// negative.
	BaseDelay time.Duration

	// Multiplier grows the delay after each failed attempt. Must be at
	// least 1.
	Multiplier float64

	// MaxDelay caps the grown delay. Must be at least BaseDelay.
	MaxDelay time.Duration

	// Kinds restricts which error kinds are retriable. Empty means every
	// error is retriable, subject to RetryIf. Driver errors that did not
	// originate in this module classify as element.KindUnknown.
	Kinds []element.Kind

	// RetryIf, when set, can veto a retry that the kind filter allowed.
	RetryIf func(err error, attempt int) bool

	// OnRetry is invoked before each backoff sleep with the error, the
	// attempt that just failed, and the upcoming delay.
	OnRetry func(err error, attempt int, delay time.Duration)
}

// DefaultConfig returns a Config with sensible defaults for flaky UI
// driver calls.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   250 * time.Millisecond,
		Multiplier:  2.0,
		MaxDelay:    2 * time.Second,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.MaxAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.Multiplier, validation.Required, validation.Min(1.0)),
	)
	if err != nil {
		return element.NewConfiguration("invalid retry config", err)
	}
	if c.BaseDelay < 0 {
		return element.NewConfiguration("retry config: BaseDelay must not be negative", nil)
	}
	if c.MaxDelay < c.BaseDelay {
		return element.NewConfiguration("retry config: MaxDelay must be at least BaseDelay", nil)
	}
	return nil
}

// Executor runs actions under a fixed retry strategy. Safe for concurrent
// use; all state is per call.
type Executor struct {
	cfg    Config
	clock  clockwork.Clock
	logger *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock overrides the time source. Intended for tests.
func WithClock(c clockwork.Clock) Option {
	return func(e *Executor) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger for per-attempt events. A nil logger changes
// nothing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// New creates an Executor after validating the configuration.
func New(cfg Config, opts ...Option) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Executor{
		cfg:   cfg,
		clock: clockwork.System(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the executor's configuration.
func (e *Executor) Config() Config {
	return e.cfg
}

// Execute invokes action until it succeeds, fails non-retriably, or
// exhausts MaxAttempts. The last error is returned as-is.
func (e *Executor) Execute(ctx context.Context, action func(context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := action(ctx)
		if err == nil {
			return nil
		}
		if !e.retriable(err, attempt) {
			return err
		}
		if attempt >= e.cfg.MaxAttempts {
			return err
		}

		delay := e.DelayFor(attempt)
		if e.cfg.OnRetry != nil {
			e.cfg.OnRetry(err, attempt, delay)
		}
		if e.logger != nil {
			e.logger.Debug("retrying", "attempt", attempt, "delay", delay, "error", err)
		}
		if serr := e.clock.Sleep(ctx, delay); serr != nil {
			return serr
		}
	}
}

// DelayFor returns the backoff sleep after the given failed attempt:
// min(BaseDelay*Multiplier^(attempt-1), MaxDelay).
func (e *Executor) DelayFor(attempt int) time.Duration {
	delay := e.cfg.BaseDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * e.cfg.Multiplier)
		if e.cfg.MaxDelay > 0 && delay >= e.cfg.MaxDelay {
			return e.cfg.MaxDelay
		}
	}
	if e.cfg.MaxDelay > 0 && delay > e.cfg.MaxDelay {
		return e.cfg.MaxDelay
	}
	return delay
}

func (e *Executor) retriable(err error, attempt int) bool {
	if len(e.cfg.Kinds) > 0 {
		kind := element.ClassifyKind(err)
		match := false
		for _, k := range e.cfg.Kinds {
			if k == kind {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	if e.cfg.RetryIf != nil && !e.cfg.RetryIf(err, attempt) {
		return false
	}
	return true
}

// Do runs a value-producing action under the executor. It mirrors Execute
// with a typed result.
func Do[T any](ctx context.Context, e *Executor, action func(context.Context) (T, error)) (T, error) {
	var result T
	err := e.Execute(ctx, func(ctx context.Context) error {
		v, err := action(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
