// Package testsupport provides the fakes the package tests and the example
// share: a manually advanced clock, a scriptable element handle and a
// scriptable flaky driver.
package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-element-resolver/element"
)

// ManualClock implements clockwork.Clock with a hand-driven current time.
// Sleep advances the clock instead of blocking, and every requested sleep
// is recorded, which makes polling and backoff behavior fully
// deterministic under test.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewManualClock creates a ManualClock starting at an arbitrary fixed time.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d and records the request. It returns the
// context error when the context is already canceled.
func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return nil
}

// Advance moves the clock forward without recording a sleep.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleeps returns a copy of the recorded sleep durations.
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// FakeHandle is a scriptable element.Handle. The zero value is a visible,
// enabled element with empty text. Setting Err makes every probe fail,
// simulating a stale or gone handle.
type FakeHandle struct {
	mu sync.Mutex

	Visible   bool
	Usable    bool
	TextValue string
	Attrs     map[string]string
	Err       error

	probes int
}

// NewFakeHandle creates a visible, enabled fake handle with the given text.
func NewFakeHandle(text string) *FakeHandle {
	return &FakeHandle{Visible: true, Usable: true, TextValue: text}
}

// Displayed implements element.Handle.
func (h *FakeHandle) Displayed() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes++
	if h.Err != nil {
		return false, h.Err
	}
	return h.Visible, nil
}

// Enabled implements element.Handle.
func (h *FakeHandle) Enabled() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes++
	if h.Err != nil {
		return false, h.Err
	}
	return h.Usable, nil
}

// Text implements element.Handle.
func (h *FakeHandle) Text() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes++
	if h.Err != nil {
		return "", h.Err
	}
	return h.TextValue, nil
}

// Attribute implements element.Handle.
func (h *FakeHandle) Attribute(name string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes++
	if h.Err != nil {
		return "", h.Err
	}
	return h.Attrs[name], nil
}

// SetText updates the fake's text.
func (h *FakeHandle) SetText(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.TextValue = s
}

// SetErr makes every subsequent probe fail with err. Pass nil to heal.
func (h *FakeHandle) SetErr(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Err = err
}

// Probes returns how many probe calls the handle received.
func (h *FakeHandle) Probes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.probes
}

// FakeDriver is a scriptable element.Resolver. Each locator (by String) can
// be assigned a handle and a number of resolution failures to serve before
// succeeding; unassigned locators always miss.
type FakeDriver struct {
	mu sync.Mutex

	handles   map[string][]element.Handle
	failures  map[string]int
	resolves  map[string]int
	resolveFn func(loc element.Locator) (element.Handle, error)
}

// NewFakeDriver creates an empty fake driver.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{
		handles:  make(map[string][]element.Handle),
		failures: make(map[string]int),
		resolves: make(map[string]int),
	}
}

// Serve registers the handles returned for the locator.
func (d *FakeDriver) Serve(loc element.Locator, handles ...element.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handles[loc.String()] = handles
}

// FailTimes makes the next n resolutions of the locator fail before the
// registered handles are served.
func (d *FakeDriver) FailTimes(loc element.Locator, n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[loc.String()] = n
}

// ResolveWith installs a custom resolution function consulted before the
// scripted tables.
func (d *FakeDriver) ResolveWith(fn func(loc element.Locator) (element.Handle, error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resolveFn = fn
}

// Resolves returns how many times the locator was resolved.
func (d *FakeDriver) Resolves(loc element.Locator) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolves[loc.String()]
}

// Resolve implements element.Resolver.
func (d *FakeDriver) Resolve(ctx context.Context, loc element.Locator) (element.Handle, error) {
	hs, err := d.resolve(loc)
	if err != nil {
		return nil, err
	}
	return hs[0], nil
}

// ResolveAll implements element.Resolver.
func (d *FakeDriver) ResolveAll(ctx context.Context, loc element.Locator) ([]element.Handle, error) {
	return d.resolve(loc)
}

func (d *FakeDriver) resolve(loc element.Locator) ([]element.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := loc.String()
	d.resolves[key]++

	if d.resolveFn != nil {
		h, err := d.resolveFn(loc)
		if err != nil {
			return nil, err
		}
		if h != nil {
			return []element.Handle{h}, nil
		}
	}

	if d.failures[key] > 0 {
		d.failures[key]--
		return nil, element.NewNotFound("no element matches "+key, nil)
	}

	hs, ok := d.handles[key]
	if !ok || len(hs) == 0 {
		return nil, element.NewNotFound("no element matches "+key, nil)
	}
	return hs, nil
}
