package core

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParseConfigOverridesDefaults(t *testing.T) {
	data := []byte(`
[assets]
base_path = "models"
watch = true

[loader]
max_concurrent_fetches = 2
duplicate_labels = "error"

[log]
level = "debug"
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Assets.BasePath != "models" || !cfg.Assets.Watch {
		t.Fatalf("unexpected assets config: %+v", cfg.Assets)
	}
	if cfg.Loader.MaxConcurrentFetches != 2 {
		t.Fatalf("expected 2 concurrent fetches, got %d", cfg.Loader.MaxConcurrentFetches)
	}
	if cfg.Loader.DuplicateLabels != DuplicateLabelsError {
		t.Fatalf("expected duplicate label policy %q, got %q", DuplicateLabelsError, cfg.Loader.DuplicateLabels)
	}
	// untouched keys keep their defaults
	if cfg.Loader.Workers != DefaultConfig().Loader.Workers {
		t.Fatalf("expected default workers, got %d", cfg.Loader.Workers)
	}
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"zero fetches":  "[loader]\nmax_concurrent_fetches = 0\n",
		"bad policy":    "[loader]\nduplicate_labels = \"ignore\"\n",
		"bad log level": "[log]\nlevel = \"loud\"\n",
		"not toml":      "[loader\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(data)); err == nil {
				t.Fatalf("expected error for %q", data)
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadErrorMatchesKindAndCause(t *testing.T) {
	err := NewLoadError(ErrorKindFetch, LoadStageResolveMaterialLibs, "model.mtl", ErrNotFound)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected error to match ErrFetch")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected error to match the wrapped ErrNotFound")
	}
	if errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("fetch error must not match ErrInvalidFormat")
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Stage != LoadStageResolveMaterialLibs {
		t.Fatalf("expected LoadError at stage %s, got %v", LoadStageResolveMaterialLibs, err)
	}
}
