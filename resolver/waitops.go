package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/wait"
)

// Named element states accepted by WaitForState.
const (
	StateDisplayed    = "displayed"
	StateEnabled      = "enabled"
	StateNotDisplayed = "not-displayed"
)

// HandleCondition evaluates a freshly resolved handle. An error result is
// captured by the polling loop and tolerated until the deadline.
type HandleCondition func(element.Handle) (bool, error)

// ConditionPair binds a locator to the condition that should hold on it.
type ConditionPair struct {
	Locator   element.Locator
	Condition HandleCondition
}

// Match identifies which pair satisfied a ForAnyCondition wait.
type Match struct {
	Index   int
	Locator element.Locator
	Handle  element.Handle
}

// WaitForState polls the named state on the locator until it holds or the
// deadline expires. Unknown state names fail fast with a KindConfiguration
// error. For not-displayed, a locator that no longer resolves counts as
// satisfied.
func (r *Resolver) WaitForState(ctx context.Context, loc element.Locator, state string, opts ...wait.Option) error {
	var cond func(element.Handle) wait.Predicate
	switch state {
	case StateDisplayed:
		cond = wait.Visible
	case StateEnabled:
		cond = wait.Enabled
	case StateNotDisplayed:
		cond = wait.Invisible
	default:
		return element.NewConfiguration(fmt.Sprintf("unknown element state %q", state), nil)
	}

	opts = append(opts, wait.WithMessage(fmt.Sprintf("%s %s", loc, state)))
	return r.waiter.Until(ctx, func() (bool, error) {
		h, err := r.Resolve(ctx, loc)
		if err != nil {
			if state == StateNotDisplayed && element.IsKind(err, element.KindNotFound) {
				return true, nil
			}
			return false, err
		}
		return cond(h)()
	}, opts...)
}

// ForElement re-resolves the locator on every tick and applies cond to the
// fresh handle until it holds. A resolution failure mid-poll is captured,
// not fatal, so on timeout the last resolution error surfaces instead of a
// generic timeout. The satisfying handle is stored in the cache and
// returned.
func (r *Resolver) ForElement(ctx context.Context, loc element.Locator, cond HandleCondition, opts ...wait.Option) (element.Handle, error) {
	op := uuid.NewString()
	logger := r.log(ctx).With("op", op, "locator", loc.String())
	start := time.Now()

	opts = append(opts, wait.WithMessage("element "+loc.String()))
	h, err := wait.UntilValue(ctx, r.waiter, func() (element.Handle, bool, error) {
		h, err := r.driver.Resolve(ctx, loc)
		if err != nil {
			return nil, false, err
		}
		ok, err := cond(h)
		if err != nil {
			return nil, false, err
		}
		return h, ok, nil
	}, opts...)
	if err != nil {
		logger.Debug("for-element failed", "elapsed", time.Since(start), "error", err)
		return nil, err
	}

	r.keys.Store(r.cache.Store(loc, h), loc)
	logger.Debug("for-element ok", "elapsed", time.Since(start))
	return h, nil
}

// ForElements is the collection analogue of ForElement: each tick resolves
// every matching handle and applies cond to the whole collection. A nil
// cond succeeds on any non-empty collection.
func (r *Resolver) ForElements(ctx context.Context, loc element.Locator, cond func([]element.Handle) (bool, error), opts ...wait.Option) ([]element.Handle, error) {
	if cond == nil {
		cond = func(hs []element.Handle) (bool, error) { return len(hs) > 0, nil }
	}

	opts = append(opts, wait.WithMessage("elements "+loc.String()))
	return wait.UntilValue(ctx, r.waiter, func() ([]element.Handle, bool, error) {
		hs, err := r.driver.ResolveAll(ctx, loc)
		if err != nil {
			return nil, false, err
		}
		ok, err := cond(hs)
		if err != nil {
			return nil, false, err
		}
		return hs, ok, nil
	}, opts...)
}

// ForAnyCondition polls the pairs in order on every tick and returns the
// first whose condition holds. A failure while evaluating one pair does not
// prevent evaluating the others on the same tick. On timeout it returns a
// KindNotFound error listing every locator.
func (r *Resolver) ForAnyCondition(ctx context.Context, pairs []ConditionPair, opts ...wait.Option) (Match, error) {
	if len(pairs) == 0 {
		return Match{}, element.NewConfiguration("ForAnyCondition requires at least one locator/condition pair", nil)
	}

	opts = append(opts, wait.WithMessage("any of the given conditions"))
	m, err := wait.UntilValue(ctx, r.waiter, func() (Match, bool, error) {
		for i, p := range pairs {
			h, err := r.driver.Resolve(ctx, p.Locator)
			if err != nil {
				continue
			}
			ok, err := p.Condition(h)
			if err != nil || !ok {
				continue
			}
			return Match{Index: i, Locator: p.Locator, Handle: h}, true, nil
		}
		return Match{}, false, nil
	}, opts...)
	if err != nil {
		names := make([]string, len(pairs))
		for i, p := range pairs {
			names[i] = p.Locator.String()
		}
		return Match{}, element.NewNotFound("no condition matched for locators: "+strings.Join(names, ", "), err)
	}
	return m, nil
}
