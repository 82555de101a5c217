package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/internal/clockwork"
)

// HandleCache is a bounded LRU store of resolved element handles keyed by
// locator fingerprint. See the package documentation for semantics.
type HandleCache struct {
	mu      sync.Mutex
	cfg     Config
	fp      element.Fingerprinter
	entries map[string]*entry
	order   *list.List // front = most recently used
	stats   stats
}

type entry struct {
	key        string
	locator    element.Locator
	handle     element.Handle
	storedAt   time.Time
	lastAccess time.Time
	elem       *list.Element
}

// New creates a HandleCache with the given configuration. A nil
// fingerprinter uses the default implementation.
func New(cfg Config, fp element.Fingerprinter) (*HandleCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Probe == nil {
		cfg.Probe = defaultProbe
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.System()
	}
	if fp == nil {
		fp = element.NewDefaultFingerprinter()
	}

	return &HandleCache{
		cfg:     cfg,
		fp:      fp,
		entries: make(map[string]*entry),
		order:   list.New(),
	}, nil
}

// Key returns the fingerprint key the cache uses for the given locator.
func (c *HandleCache) Key(loc element.Locator) string {
	return c.fp.Fingerprint(loc)
}

// Store inserts or overwrites the handle for the given locator and returns
// its fingerprint key. When the insert pushes the cache past MaxSize, the
// least-recently-used entry is evicted.
func (c *HandleCache) Store(loc element.Locator, h element.Handle) string {
	key := c.fp.Fingerprint(loc)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeLocked(key, loc, h)
	return key
}

// Get returns the cached handle for the given fingerprint key. It reports a
// miss when the key is absent, the TTL elapsed since the last access, or the
// liveness probe rejects the handle. A hit refreshes the TTL clock and the
// recency order.
func (c *HandleCache) Get(key string) (element.Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

// GetOrFind returns the cached handle for the locator, or invokes finder on
// a miss. The finder runs without the cache lock held. Its result is probed
// and stored only when live; either way the freshly found handle is
// returned. A finder error propagates and nothing is cached.
func (c *HandleCache) GetOrFind(ctx context.Context, loc element.Locator, finder element.FindFunc) (element.Handle, error) {
	key := c.fp.Fingerprint(loc)

	c.mu.Lock()
	h, ok := c.getLocked(key)
	c.mu.Unlock()
	if ok {
		return h, nil
	}

	found, err := finder(ctx)
	if err != nil {
		return nil, err
	}

	if c.cfg.Probe(found) {
		c.mu.Lock()
		c.storeLocked(key, loc, found)
		c.mu.Unlock()
	}
	return found, nil
}

// Invalidate removes the entry for the given locator, reporting whether an
// entry existed.
func (c *HandleCache) Invalidate(loc element.Locator) bool {
	return c.InvalidateKey(c.fp.Fingerprint(loc))
}

// InvalidateKey removes the entry for the given fingerprint key.
func (c *HandleCache) InvalidateKey(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(ent)
	return true
}

// InvalidatePrefix removes every entry whose key starts with the given
// prefix and returns the number removed. Combined with element.KeyPrefix
// this drops all cached variants of a strategy/value pair at once.
func (c *HandleCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var doomed []*entry
	for key, ent := range c.entries {
		if strings.HasPrefix(key, prefix) {
			doomed = append(doomed, ent)
		}
	}
	for _, ent := range doomed {
		c.removeLocked(ent)
	}
	return len(doomed)
}

// Clear removes all entries.
func (c *HandleCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.order.Init()
	c.stats.clears++
}

// Len returns the number of live entries. May include expired entries that
// have not been touched since expiry.
func (c *HandleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of cache statistics.
func (c *HandleCache) Stats() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.snapshot()
}

func (c *HandleCache) storeLocked(key string, loc element.Locator, h element.Handle) {
	now := c.cfg.Clock.Now()

	if ent, ok := c.entries[key]; ok {
		ent.handle = h
		ent.locator = loc
		ent.storedAt = now
		ent.lastAccess = now
		c.order.MoveToFront(ent.elem)
		c.stats.stores++
		return
	}

	ent := &entry{
		key:        key,
		locator:    loc,
		handle:     h,
		storedAt:   now,
		lastAccess: now,
	}
	ent.elem = c.order.PushFront(ent)
	c.entries[key] = ent
	c.stats.stores++

	for len(c.entries) > c.cfg.MaxSize {
		c.evictOldestLocked()
	}
}

func (c *HandleCache) getLocked(key string) (element.Handle, bool) {
	ent, ok := c.entries[key]
	if !ok {
		c.stats.misses++
		return nil, false
	}

	now := c.cfg.Clock.Now()
	if now.Sub(ent.lastAccess) >= c.cfg.TTL {
		c.removeLocked(ent)
		c.stats.expirations++
		c.stats.misses++
		return nil, false
	}

	if !c.cfg.Probe(ent.handle) {
		c.removeLocked(ent)
		c.stats.evictions++
		c.stats.misses++
		return nil, false
	}

	ent.lastAccess = now
	c.order.MoveToFront(ent.elem)
	c.stats.hits++
	return ent.handle, true
}

func (c *HandleCache) evictOldestLocked() {
	back := c.order.Back()
	if back == nil {
		return
	}
	c.removeLocked(back.Value.(*entry))
	c.stats.evictions++
}

func (c *HandleCache) removeLocked(ent *entry) {
	delete(c.entries, ent.key)
	c.order.Remove(ent.elem)
}
