package di

import (
	"log/slog"

	"github.com/goliatone/go-element-resolver/cache"
	"github.com/goliatone/go-element-resolver/config"
	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/resolver"
	"github.com/goliatone/go-element-resolver/wait"
)

// Container provides dependency injection for the resolution engine. It
// manages singleton instances of the fingerprinter, handle cache and wait
// engine, and provides a factory for resolvers bound to a driver. Use it at
// the application boundary; the core packages never reach for it.
type Container struct {
	cfg           config.Config
	fingerprinter element.Fingerprinter
	cache         *cache.HandleCache
	waiter        *wait.Waiter
	logger        *slog.Logger
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithLogger sets the logger shared by components built from the container.
func WithLogger(l *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.logger = l
	}
}

// NewContainer creates a DI container from the given profile. The retry
// strategy is validated up front so misconfiguration fails here rather than
// on first use.
func NewContainer(cfg config.Config, opts ...ContainerOption) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		cfg:           cfg,
		fingerprinter: element.NewDefaultFingerprinter(),
	}
	for _, opt := range opts {
		opt(c)
	}

	handleCache, err := cache.New(cfg.ToCache(), c.fingerprinter)
	if err != nil {
		return nil, err
	}
	c.cache = handleCache

	waiterOpts := cfg.WaiterOptions()
	if c.logger != nil {
		waiterOpts = append(waiterOpts, wait.WithLogger(c.logger))
	}
	c.waiter = wait.NewWaiter(waiterOpts...)

	return c, nil
}

// NewContainerWithDefaults creates a container using the default profile.
// Convenience constructor for typical use.
func NewContainerWithDefaults(opts ...ContainerOption) (*Container, error) {
	return NewContainer(config.Default(), opts...)
}

// Cache returns the singleton handle cache.
func (c *Container) Cache() *cache.HandleCache {
	return c.cache
}

// Waiter returns the singleton wait engine.
func (c *Container) Waiter() *wait.Waiter {
	return c.waiter
}

// Fingerprinter returns the singleton fingerprinter.
func (c *Container) Fingerprinter() element.Fingerprinter {
	return c.fingerprinter
}

// Config returns a copy of the profile used by this container.
func (c *Container) Config() config.Config {
	return c.cfg
}

// NewResolver creates a resolver bound to the given driver, wired with the
// container's cache, waiter, retry strategy and logger.
func (c *Container) NewResolver(driver element.Resolver) (*resolver.Resolver, error) {
	opts := []resolver.Option{
		resolver.WithCache(c.cache),
		resolver.WithWaiter(c.waiter),
		resolver.WithRetryConfig(c.cfg.ToRetry()),
	}
	if c.logger != nil {
		opts = append(opts, resolver.WithLogger(c.logger))
	}
	return resolver.New(driver, opts...)
}
