package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-element-resolver/element"
)

// FromYAML parses a profile from YAML, overlaying the defaults, and
// validates the result.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, element.NewConfiguration("invalid profile YAML", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a profile file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, element.NewConfiguration("cannot read profile "+path, err)
	}
	return FromYAML(data)
}
