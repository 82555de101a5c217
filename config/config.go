package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-element-resolver/cache"
	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/retry"
	"github.com/goliatone/go-element-resolver/wait"
)

// Duration wraps time.Duration with YAML support for duration strings.
type Duration time.Duration

// UnmarshalYAML parses a duration scalar like "250ms" or "10s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"250ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config is the loadable profile for the resolution engine.
type Config struct {
	Cache CacheConfig `yaml:"cache"`
	Wait  WaitConfig  `yaml:"wait"`
	Retry RetryConfig `yaml:"retry"`
}

// CacheConfig mirrors cache.Config for the YAML surface.
type CacheConfig struct {
	MaxSize int      `yaml:"max_size"`
	TTL     Duration `yaml:"ttl"`
}

// WaitConfig carries the polling defaults for a wait.Waiter.
type WaitConfig struct {
	Timeout  Duration `yaml:"timeout"`
	Interval Duration `yaml:"interval"`
}

// RetryConfig mirrors retry.Config for the YAML surface.
type RetryConfig struct {
	MaxAttempts int      `yaml:"max_attempts"`
	BaseDelay   Duration `yaml:"base_delay"`
	Multiplier  float64  `yaml:"multiplier"`
	MaxDelay    Duration `yaml:"max_delay"`
}

// Default returns the profile matching the core packages' defaults.
func Default() Config {
	cacheCfg := cache.DefaultConfig()
	retryCfg := retry.DefaultConfig()

	return Config{
		Cache: CacheConfig{
			MaxSize: cacheCfg.MaxSize,
			TTL:     Duration(cacheCfg.TTL),
		},
		Wait: WaitConfig{
			Timeout:  Duration(wait.DefaultTimeout),
			Interval: Duration(wait.DefaultInterval),
		},
		Retry: RetryConfig{
			MaxAttempts: retryCfg.MaxAttempts,
			BaseDelay:   Duration(retryCfg.BaseDelay),
			Multiplier:  retryCfg.Multiplier,
			MaxDelay:    Duration(retryCfg.MaxDelay),
		},
	}
}

// Validate checks the profile, delegating the core parameter rules to the
// packages that own them.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c.Wait,
		validation.Field(&c.Wait.Timeout, validation.Required, validation.Min(Duration(1))),
		validation.Field(&c.Wait.Interval, validation.Required, validation.Min(Duration(1))),
	)
	if err != nil {
		return element.NewConfiguration("invalid wait config", err)
	}
	if err := c.ToCache().Validate(); err != nil {
		return err
	}
	return c.ToRetry().Validate()
}

// ToCache converts the profile into a cache.Config.
func (c Config) ToCache() cache.Config {
	return cache.Config{
		MaxSize: c.Cache.MaxSize,
		TTL:     time.Duration(c.Cache.TTL),
	}
}

// ToRetry converts the profile into a retry.Config. The retriable kinds are
// the resolution-domain defaults: misses and raw driver errors.
func (c Config) ToRetry() retry.Config {
	return retry.Config{
		MaxAttempts: c.Retry.MaxAttempts,
		BaseDelay:   time.Duration(c.Retry.BaseDelay),
		Multiplier:  c.Retry.Multiplier,
		MaxDelay:    time.Duration(c.Retry.MaxDelay),
		Kinds:       []element.Kind{element.KindNotFound, element.KindUnknown},
	}
}

// WaiterOptions converts the profile into wait.Waiter construction options.
func (c Config) WaiterOptions() []wait.WaiterOption {
	return []wait.WaiterOption{
		wait.WithDefaultTimeout(time.Duration(c.Wait.Timeout)),
		wait.WithDefaultInterval(time.Duration(c.Wait.Interval)),
	}
}
