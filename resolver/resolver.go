package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/goliatone/go-element-resolver/cache"
	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/retry"
	"github.com/goliatone/go-element-resolver/wait"
)

// Resolver turns locators into handles, hiding the staleness and timing
// flakiness of the underlying driver behind caching, waiting and retrying.
type Resolver struct {
	driver      element.Resolver
	cache       *cache.HandleCache
	waiter      *wait.Waiter
	retrier     *retry.Executor
	textRetrier *retry.Executor
	logger      *slog.Logger
	keys        *xsync.MapOf[string, element.Locator]
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithCache sets the handle cache.
func WithCache(c *cache.HandleCache) Option {
	return func(r *Resolver) error {
		if c != nil {
			r.cache = c
		}
		return nil
	}
}

// WithWaiter sets the wait engine used by the For* and WaitForState
// operations.
func WithWaiter(w *wait.Waiter) Option {
	return func(r *Resolver) error {
		if w != nil {
			r.waiter = w
		}
		return nil
	}
}

// WithRetryConfig sets the retry strategy for the derived retry operations.
func WithRetryConfig(cfg retry.Config) Option {
	return func(r *Resolver) error {
		return r.setRetryConfig(cfg)
	}
}

// WithLogger sets the logger. When unset, operations use the logger carried
// by the call context.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) error {
		r.logger = l
		return nil
	}
}

// New creates a Resolver bound to the given driver. Defaults: a fresh cache
// with DefaultConfig, a default Waiter, and a retry strategy that retries
// resolution misses and raw driver errors.
func New(driver element.Resolver, opts ...Option) (*Resolver, error) {
	if driver == nil {
		return nil, element.NewConfiguration("resolver requires a driver", nil)
	}

	r := &Resolver{
		driver: driver,
		waiter: wait.NewWaiter(),
		keys:   xsync.NewMapOf[string, element.Locator](),
	}

	defaultCache, err := cache.New(cache.DefaultConfig(), nil)
	if err != nil {
		return nil, err
	}
	r.cache = defaultCache

	cfg := retry.DefaultConfig()
	cfg.Kinds = []element.Kind{element.KindNotFound, element.KindUnknown}
	if err := r.setRetryConfig(cfg); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// setRetryConfig builds the two executors derived from one strategy: the
// general one, and the text variant that additionally retries state errors.
func (r *Resolver) setRetryConfig(cfg retry.Config) error {
	general, err := retry.New(cfg)
	if err != nil {
		return err
	}

	textCfg := cfg
	if len(cfg.Kinds) > 0 {
		textCfg.Kinds = append(append([]element.Kind{}, cfg.Kinds...), element.KindState)
	}
	text, err := retry.New(textCfg)
	if err != nil {
		return err
	}

	r.retrier = general
	r.textRetrier = text
	return nil
}

// Cache exposes the underlying handle cache for statistics and direct
// invalidation.
func (r *Resolver) Cache() *cache.HandleCache {
	return r.cache
}

func (r *Resolver) log(ctx context.Context) *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slogcontext.FromCtx(ctx)
}

// Resolve returns a handle for the locator, serving from the cache when a
// live entry exists and resolving through the driver otherwise.
func (r *Resolver) Resolve(ctx context.Context, loc element.Locator) (element.Handle, error) {
	op := uuid.NewString()
	logger := r.log(ctx).With("op", op, "locator", loc.String())
	start := time.Now()

	h, err := r.cache.GetOrFind(ctx, loc, func(ctx context.Context) (element.Handle, error) {
		return r.driver.Resolve(ctx, loc)
	})
	if err != nil {
		logger.Debug("resolve failed", "elapsed", time.Since(start), "error", err)
		return nil, err
	}

	r.keys.Store(r.cache.Key(loc), loc)
	logger.Debug("resolve ok", "elapsed", time.Since(start))
	return h, nil
}

// ResolveWithRetry resolves the locator under the retry strategy,
// invalidating the cached entry between attempts so each retry resolves
// fresh.
func (r *Resolver) ResolveWithRetry(ctx context.Context, loc element.Locator) (element.Handle, error) {
	return retry.Do(ctx, r.retrier, func(ctx context.Context) (element.Handle, error) {
		h, err := r.Resolve(ctx, loc)
		if err != nil {
			r.cache.Invalidate(loc)
			return nil, err
		}
		return h, nil
	})
}

// Interact resolves the locator and runs fn against the handle, retrying
// interaction failures with a freshly resolved handle. The cached entry is
// dropped after a failure since a stale handle is the common cause.
func (r *Resolver) Interact(ctx context.Context, loc element.Locator, fn func(element.Handle) error) error {
	return r.retrier.Execute(ctx, func(ctx context.Context) error {
		h, err := r.Resolve(ctx, loc)
		if err != nil {
			return err
		}
		if err := fn(h); err != nil {
			r.cache.Invalidate(loc)
			return err
		}
		return nil
	})
}

// ReadText resolves the locator and reads its text, retrying read failures
// and, when validate is given, results that fail validation. An exhausted
// validation failure surfaces as a KindState error.
func (r *Resolver) ReadText(ctx context.Context, loc element.Locator, validate func(string) bool) (string, error) {
	return retry.Do(ctx, r.textRetrier, func(ctx context.Context) (string, error) {
		h, err := r.Resolve(ctx, loc)
		if err != nil {
			return "", err
		}
		text, err := h.Text()
		if err != nil {
			r.cache.Invalidate(loc)
			return "", err
		}
		if validate != nil && !validate(text) {
			return "", element.NewState(fmt.Sprintf("text %q failed validation for %s", text, loc), nil)
		}
		return text, nil
	})
}

// InvalidatePrefix drops every cached entry whose fingerprint starts with
// the given prefix and forgets the matching registry keys. Use
// element.KeyPrefix to build prefixes.
func (r *Resolver) InvalidatePrefix(prefix string) int {
	n := r.cache.InvalidatePrefix(prefix)
	r.keys.Range(func(key string, _ element.Locator) bool {
		if strings.HasPrefix(key, prefix) {
			r.keys.Delete(key)
		}
		return true
	})
	return n
}

// ActiveLocators lists the locators this resolver has successfully resolved
// so far. Diagnostic surface; order is unspecified.
func (r *Resolver) ActiveLocators() []element.Locator {
	var locs []element.Locator
	r.keys.Range(func(_ string, loc element.Locator) bool {
		locs = append(locs, loc)
		return true
	})
	return locs
}
