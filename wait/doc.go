// Package wait provides a deadline-bounded condition polling engine for
// unreliable UI drivers.
//
// # Overview
//
// A Waiter repeatedly evaluates a condition until it holds, the deadline
// expires, or the context is canceled. Evaluation errors are never fatal
// mid-poll: they are captured and polling continues. On timeout the last
// captured error is returned in preference to a generic timeout error, even
// when later evaluations returned a plain false. This precedence is a
// deliberate contract; callers rely on seeing the underlying driver error
// rather than an opaque timeout.
//
//	w := wait.NewWaiter()
//	err := w.Until(ctx, wait.Visible(handle),
//		wait.WithTimeout(5*time.Second),
//		wait.WithInterval(200*time.Millisecond),
//	)
//
// Variants: While succeeds once the condition first evaluates false;
// UntilStable requires the condition to hold continuously for a stability
// window, with any false observation resetting the window; Poll is the
// reduced-surface sibling with no backoff or stability support. The generic
// UntilValue returns the value produced by the condition.
//
// Condition factories (Visible, Enabled, Clickable, Invisible, TextPresent,
// ...) build predicates over element handles that swallow probe errors and
// degrade to false, except Invisible where a probe error counts as "gone",
// which is invisible.
package wait
