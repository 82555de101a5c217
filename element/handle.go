package element

import "context"

// Handle is the probe capability of a remotely-resolved UI element. It is
// supplied by the surrounding element/page layer and remains owned by it;
// this module caches handles but never manages their lifecycle.
//
// Every method may return an error to signal the handle is invalid or gone.
type Handle interface {
	Displayed() (bool, error)
	Enabled() (bool, error)
	Text() (string, error)
	Attribute(name string) (string, error)
}

// Resolver is the locator resolution capability supplied by the driver
// layer. Resolve returns a KindNotFound error when nothing matches.
type Resolver interface {
	Resolve(ctx context.Context, loc Locator) (Handle, error)
	ResolveAll(ctx context.Context, loc Locator) ([]Handle, error)
}

// FindFunc is the function signature the cache expects when fetching a
// handle from the source of truth on a miss.
type FindFunc func(ctx context.Context) (Handle, error)
