package wait

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-element-resolver/element"
)

// Visible reports whether the handle is displayed. A probe error degrades
// to false.
func Visible(h element.Handle) Predicate {
	return func() (bool, error) {
		ok, err := h.Displayed()
		if err != nil {
			return false, nil
		}
		return ok, nil
	}
}

// Enabled reports whether the handle is enabled. A probe error degrades to
// false.
func Enabled(h element.Handle) Predicate {
	return func() (bool, error) {
		ok, err := h.Enabled()
		if err != nil {
			return false, nil
		}
		return ok, nil
	}
}

// Clickable reports whether the handle is both displayed and enabled.
func Clickable(h element.Handle) Predicate {
	visible := Visible(h)
	enabled := Enabled(h)
	return func() (bool, error) {
		v, _ := visible()
		if !v {
			return false, nil
		}
		return enabled()
	}
}

// Invisible reports whether the handle is not displayed. A probe error
// means the handle is gone, which counts as invisible.
func Invisible(h element.Handle) Predicate {
	return func() (bool, error) {
		ok, err := h.Displayed()
		if err != nil {
			return true, nil
		}
		return !ok, nil
	}
}

// TextPresent reports whether the handle's text contains want.
func TextPresent(h element.Handle, want string) Predicate {
	return func() (bool, error) {
		s, err := h.Text()
		if err != nil {
			return false, nil
		}
		return strings.Contains(s, want), nil
	}
}

// TextMatches reports whether the handle's text matches the pattern.
func TextMatches(h element.Handle, pattern *regexp.Regexp) Predicate {
	return func() (bool, error) {
		s, err := h.Text()
		if err != nil {
			return false, nil
		}
		return pattern.MatchString(s), nil
	}
}

// TextChanged reports whether the handle's text differs from baseline.
func TextChanged(h element.Handle, baseline string) Predicate {
	return func() (bool, error) {
		s, err := h.Text()
		if err != nil {
			return false, nil
		}
		return s != baseline, nil
	}
}

// AttributeEquals reports whether the named attribute equals want.
func AttributeEquals(h element.Handle, name, want string) Predicate {
	return func() (bool, error) {
		v, err := h.Attribute(name)
		if err != nil {
			return false, nil
		}
		return v == want, nil
	}
}

// AttributeContains reports whether the named attribute contains want.
func AttributeContains(h element.Handle, name, want string) Predicate {
	return func() (bool, error) {
		v, err := h.Attribute(name)
		if err != nil {
			return false, nil
		}
		return strings.Contains(v, want), nil
	}
}

// Any is true when at least one predicate is true. Evaluation
// short-circuits on the first true; an error in one predicate is isolated
// and does not prevent evaluating the others.
func Any(conds ...Predicate) Predicate {
	return func() (bool, error) {
		for _, cond := range conds {
			ok, err := cond()
			if err != nil {
				continue
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

// All is true when every predicate is true. A predicate error counts as
// false.
func All(conds ...Predicate) Predicate {
	return func() (bool, error) {
		for _, cond := range conds {
			ok, err := cond()
			if err != nil || !ok {
				return false, nil
			}
		}
		return true, nil
	}
}
