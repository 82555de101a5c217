// Package element defines the leaf types shared by the resolution engine.
//
// # Overview
//
// The package exports four groups of types:
//
//   - Locator: a semantic description of how to find a UI element
//   - Handle: the probe capability exposed by a remotely-resolved element
//   - Resolver: the driver capability that turns locators into handles
//   - Error/Kind: the error taxonomy every failure path of the engine ends in
//
// Handles are opaque references owned by the surrounding page/element layer.
// The engine never controls a handle's lifecycle; it only caches and probes
// them. Any probe method may return an error to signal the handle is stale or
// gone, and callers in this module treat such errors as "not satisfied"
// rather than propagating them mid-poll.
//
// # Fingerprints
//
// A Fingerprinter turns a Locator into a deterministic cache key. The default
// implementation joins strategy and value verbatim and appends an xxhash
// digest of the canonicalized filter options:
//
//	css::#login-button::ef46db3751d8e999
//
// Equal logical locators always produce equal keys, and the readable
// strategy/value prefix allows prefix-scoped invalidation of related entries.
package element
