package element

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits the segments of a fingerprint key.
const KeySeparator = "::"

// Fingerprinter turns a Locator into a deterministic cache key. Equal
// logical locators must produce equal keys across calls.
type Fingerprinter interface {
	Fingerprint(loc Locator) string
}

// defaultFingerprinter joins strategy and value verbatim and digests the
// filter options with xxhash, keeping keys readable enough for prefix
// invalidation while staying collision-resistant on the option set.
type defaultFingerprinter struct{}

// NewDefaultFingerprinter creates the default fingerprint implementation.
func NewDefaultFingerprinter() Fingerprinter {
	return &defaultFingerprinter{}
}

// Fingerprint builds "strategy::value::<16-hex digest of options>".
func (f *defaultFingerprinter) Fingerprint(loc Locator) string {
	parts := []string{loc.Strategy, loc.Value, optionsDigest(loc.Options)}
	return strings.Join(parts, KeySeparator)
}

// KeyPrefix returns the fingerprint prefix shared by every variant of the
// given strategy/value pair, regardless of filter options.
func KeyPrefix(strategy, value string) string {
	return strategy + KeySeparator + value + KeySeparator
}

// optionsDigest hashes the options in sorted key order so that map iteration
// order never leaks into the key.
func optionsDigest(opts map[string]string) string {
	d := xxhash.New()
	if len(opts) > 0 {
		keys := make([]string, 0, len(opts))
		for k := range opts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			_, _ = d.WriteString(k)
			_, _ = d.WriteString("=")
			_, _ = d.WriteString(opts[k])
			_, _ = d.WriteString(";")
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
