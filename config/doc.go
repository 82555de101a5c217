// Package config loads resolution-engine profiles from YAML and converts
// them into the cache, wait and retry configurations the core packages
// consume. Durations are written as Go duration strings ("250ms", "10s").
package config
