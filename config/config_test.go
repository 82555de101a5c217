package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-element-resolver/element"
	"github.com/goliatone/go-element-resolver/retry"
	"github.com/goliatone/go-element-resolver/wait"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
cache:
  max_size: 64
  ttl: 5s
wait:
  timeout: 2s
  interval: 100ms
retry:
  max_attempts: 5
  base_delay: 50ms
  multiplier: 1.5
  max_delay: 1s
`)

	cfg, err := FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML() error: %v", err)
	}

	if cfg.Cache.MaxSize != 64 {
		t.Errorf("Cache.MaxSize = %d, want 64", cfg.Cache.MaxSize)
	}
	if time.Duration(cfg.Cache.TTL) != 5*time.Second {
		t.Errorf("Cache.TTL = %v, want 5s", time.Duration(cfg.Cache.TTL))
	}
	if time.Duration(cfg.Wait.Timeout) != 2*time.Second {
		t.Errorf("Wait.Timeout = %v, want 2s", time.Duration(cfg.Wait.Timeout))
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Retry.MaxAttempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.Multiplier != 1.5 {
		t.Errorf("Retry.Multiplier = %v, want 1.5", cfg.Retry.Multiplier)
	}
}

func TestFromYAMLOverlaysDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte("cache:\n  ttl: 5s\n"))
	if err != nil {
		t.Fatalf("FromYAML() error: %v", err)
	}

	def := Default()
	if cfg.Cache.MaxSize != def.Cache.MaxSize {
		t.Errorf("Cache.MaxSize = %d, want the default %d", cfg.Cache.MaxSize, def.Cache.MaxSize)
	}
	if time.Duration(cfg.Cache.TTL) != 5*time.Second {
		t.Errorf("Cache.TTL = %v, want the overridden 5s", time.Duration(cfg.Cache.TTL))
	}
	if cfg.Retry.MaxAttempts != def.Retry.MaxAttempts {
		t.Errorf("Retry.MaxAttempts = %d, want the default %d", cfg.Retry.MaxAttempts, def.Retry.MaxAttempts)
	}
}

func TestFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed duration", "cache:\n  ttl: fast\n"},
		{"not yaml", ": : :"},
		{"invalid retry", "retry:\n  max_attempts: 0\n"},
		{"invalid cache size", "cache:\n  max_size: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.data))
			if !element.IsKind(err, element.KindConfiguration) {
				t.Errorf("FromYAML() error = %v, want a configuration error", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yml")
	if err := os.WriteFile(path, []byte("wait:\n  timeout: 3s\n"), 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if time.Duration(cfg.Wait.Timeout) != 3*time.Second {
		t.Errorf("Wait.Timeout = %v, want 3s", time.Duration(cfg.Wait.Timeout))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if !element.IsKind(err, element.KindConfiguration) {
		t.Fatalf("Load() error = %v, want a configuration error", err)
	}
}

func TestToRetryCarriesDomainKinds(t *testing.T) {
	cfg := Default().ToRetry()

	want := []element.Kind{element.KindNotFound, element.KindUnknown}
	if len(cfg.Kinds) != len(want) {
		t.Fatalf("Kinds = %v, want %v", cfg.Kinds, want)
	}
	for i, k := range want {
		if cfg.Kinds[i] != k {
			t.Errorf("Kinds[%d] = %s, want %s", i, cfg.Kinds[i], k)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("ToRetry().Validate() error: %v", err)
	}

	if _, err := retry.New(cfg); err != nil {
		t.Errorf("retry.New(ToRetry()) error: %v", err)
	}
}

func TestWaiterOptions(t *testing.T) {
	cfg := Default()
	cfg.Wait.Timeout = Duration(time.Second)
	cfg.Wait.Interval = Duration(10 * time.Millisecond)

	// The options must build a working waiter; exact defaults are covered
	// by the wait package tests.
	w := wait.NewWaiter(cfg.WaiterOptions()...)
	if w == nil {
		t.Fatal("expected a waiter")
	}
}

func TestDurationMarshalYAML(t *testing.T) {
	v, err := Duration(250 * time.Millisecond).MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if v != "250ms" {
		t.Errorf("MarshalYAML() = %v, want %q", v, "250ms")
	}
}
