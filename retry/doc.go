// Package retry provides a bounded-attempt executor with exponential
// backoff over flaky synchronous driver calls.
//
// An action that succeeds returns immediately. A failing action is retried
// only when its error kind matches the configured retriable kinds and the
// optional RetryIf predicate agrees; anything else re-raises at once. After
// attempt N the executor sleeps min(BaseDelay*Multiplier^(N-1), MaxDelay)
// before trying again, and the final exhausted attempt re-raises the
// original error untouched.
package retry
