// Package resolver is the resolution entrypoint of the module: it combines
// the handle cache, the conditional wait engine and the retry executor into
// the operations test code actually calls.
//
// A Resolver is an explicit context object constructed once per driver and
// passed around; there is no package-level singleton. Resolve serves handles
// through the cache, ResolveWithRetry and Interact add bounded retries with
// cache invalidation between attempts, ReadText treats text-validation
// failures as retriable state errors, and the ForElement/ForElements/
// ForAnyCondition family re-resolves locators on every polling tick so a
// staleness window between resolution and condition check cannot wedge a
// wait.
//
// Operations log start/outcome events with a per-operation correlation id
// through the logger configured on the resolver, falling back to the logger
// carried by the context.
package resolver
