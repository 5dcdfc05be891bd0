package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DuplicateLabelPolicy decides what happens when a load registers the same label twice.
type DuplicateLabelPolicy string

const (
	// DuplicateLabelsOverwrite keeps the last registration and logs a warning.
	DuplicateLabelsOverwrite DuplicateLabelPolicy = "overwrite"
	// DuplicateLabelsError aborts the load with ErrLabelCollision.
	DuplicateLabelsError DuplicateLabelPolicy = "error"
)

type AssetsConfig struct {
	/** @brief The directory every asset path is relative to. */
	BasePath string `toml:"base_path"`
	/** @brief Watch BasePath for changes and reload affected models. */
	Watch bool `toml:"watch"`
}

type LoaderConfig struct {
	/** @brief Upper bound of concurrent fetches issued by a single load. */
	MaxConcurrentFetches int `toml:"max_concurrent_fetches"`
	/** @brief Behaviour on duplicate labels within one load. */
	DuplicateLabels DuplicateLabelPolicy `toml:"duplicate_labels"`
	/** @brief Number of workers running asynchronous loads. */
	Workers int `toml:"workers"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Config is the on-disk configuration of the asset pipeline.
type Config struct {
	Assets AssetsConfig `toml:"assets"`
	Loader LoaderConfig `toml:"loader"`
	Log    LogConfig    `toml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Assets: AssetsConfig{
			BasePath: "assets",
			Watch:    false,
		},
		Loader: LoaderConfig{
			MaxConcurrentFetches: 8,
			DuplicateLabels:      DuplicateLabelsOverwrite,
			Workers:              2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
// A missing file is not an error; the defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			LogWarn("config file '%s' not found, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Loader.MaxConcurrentFetches <= 0 {
		return fmt.Errorf("loader.max_concurrent_fetches must be > 0, got %d", c.Loader.MaxConcurrentFetches)
	}
	if c.Loader.Workers <= 0 {
		return fmt.Errorf("loader.workers must be > 0, got %d", c.Loader.Workers)
	}
	switch c.Loader.DuplicateLabels {
	case DuplicateLabelsOverwrite, DuplicateLabelsError:
	default:
		return fmt.Errorf("loader.duplicate_labels must be %q or %q, got %q", DuplicateLabelsOverwrite, DuplicateLabelsError, c.Loader.DuplicateLabels)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	return nil
}

// ApplyLogLevel sets the shared logger to the configured level.
func (c *Config) ApplyLogLevel() {
	level, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		LogWarn("invalid log level '%s', keeping current level", c.Log.Level)
		return
	}
	SetLogLevel(level)
}
