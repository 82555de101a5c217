package element

import (
	"fmt"
	"sort"
	"strings"
)

// Locator describes how to find an element: a lookup strategy (css, xpath,
// id, accessibility id, ...), the strategy-specific value, and optional
// extra filter options applied by the driver.
type Locator struct {
	Strategy string
	Value    string
	Options  map[string]string
}

// NewLocator creates a Locator with the given strategy and value.
func NewLocator(strategy, value string) Locator {
	return Locator{Strategy: strategy, Value: value}
}

// WithOption returns a copy of the locator with an extra filter option set.
// The receiver is not modified.
func (l Locator) WithOption(key, value string) Locator {
	opts := make(map[string]string, len(l.Options)+1)
	for k, v := range l.Options {
		opts[k] = v
	}
	opts[key] = value
	l.Options = opts
	return l
}

// String renders the locator as "strategy=value" plus sorted options, e.g.
// "css=#login[index=2]". Used in log output and error messages.
func (l Locator) String() string {
	if len(l.Options) == 0 {
		return fmt.Sprintf("%s=%s", l.Strategy, l.Value)
	}

	keys := make([]string, 0, len(l.Options))
	for k := range l.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%s", k, l.Options[k])
	}
	return fmt.Sprintf("%s=%s[%s]", l.Strategy, l.Value, strings.Join(pairs, ","))
}
