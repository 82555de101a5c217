// Package cache provides a bounded, TTL-aware, LRU-ordered store mapping
// locator fingerprints to element handles.
//
// # Overview
//
// HandleCache keeps handles already resolved by the driver so repeated
// lookups of the same locator skip the (slow, flaky) remote resolution. The
// cache never owns a handle; it merely holds a back reference and drops it
// when the entry expires, is evicted, or fails a liveness probe.
//
// Eviction is exact LRU: when an insert pushes the cache past MaxSize, the
// single least-recently-touched entry is removed, ties broken by insertion
// order. Expiry is lazy: an entry whose TTL elapsed since its last access is
// detected and removed on the next Get. Every hit refreshes both the TTL
// clock and the recency order.
//
// # Basic Usage
//
//	c, err := cache.New(cache.DefaultConfig(), nil)
//	if err != nil {
//		return err
//	}
//
//	h, err := c.GetOrFind(ctx, loc, func(ctx context.Context) (element.Handle, error) {
//		return driver.Resolve(ctx, loc)
//	})
//
// GetOrFind calls the finder only on a miss and never while holding the
// cache lock, so a slow resolution cannot block unrelated lookups. A finder
// error propagates to the caller and nothing is cached.
//
// # Liveness
//
// On every hit the cached handle is probed before being returned. The
// default probe asks the handle for its displayed state; a probe error or a
// false result marks the handle stale, evicts the entry, and reports a miss.
// Probe errors are swallowed, never surfaced.
//
// # Concurrency
//
// All mutating operations, including statistics updates, run under a single
// mutex around the entry map and recency list, so the cache is safe for
// parallel test workers sharing a process.
package cache
