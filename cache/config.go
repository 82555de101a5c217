package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/internal/clockwork"
)

// Config holds the handle cache configuration.
type Config struct {
	// MaxSize is the maximum number of live entries. Must be at least 1.
	MaxSize int

	// TTL is how long an entry stays valid without being accessed. Every
	// hit refreshes the clock. Must be greater than 0.
	TTL time.Duration

	// Probe checks whether a cached handle is still usable. When nil, the
	// default probe asks the handle for its displayed state and treats an
	// error or a false result as stale.
	Probe func(element.Handle) bool

	// Clock overrides the time source. Nil uses the system clock.
	Clock clockwork.Clock
}

// DefaultConfig returns a Config with sensible defaults for UI automation:
// a few hundred handles and a TTL shorter than typical page lifetimes.
func DefaultConfig() Config {
	return Config{
		MaxSize: 256,
		TTL:     30 * time.Second,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.MaxSize, validation.Required, validation.Min(1)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Duration(1))),
	)
	if err != nil {
		return element.NewConfiguration("invalid cache config", err)
	}
	return nil
}

// defaultProbe treats a Displayed error or a false result as stale. The
// probe error is swallowed; staleness reports as a plain miss.
func defaultProbe(h element.Handle) bool {
	ok, err := h.Displayed()
	return err == nil && ok
}
