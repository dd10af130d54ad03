package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the moonlang.yml project configuration.
type Config struct {
	AliasPack     string        `mapstructure:"alias_pack"`
	ReservedWords []string      `mapstructure:"reserved_words"`
	Watch         WatchConfig   `mapstructure:"watch"`
}

// WatchConfig holds the `watch.debounce_ms` setting. The file watcher
// behind `moonlang tokens/parse --watch` does not read it; it always
// debounces at 100ms.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Debounce returns the configured debounce interval as a time.Duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Load loads the configuration from moonlang.yml or moonlang.yaml in the
// current directory. A missing file is not an error — the defaults set
// below apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("alias_pack", "")
	v.SetDefault("reserved_words", []string{})
	v.SetDefault("watch.debounce_ms", 100)

	v.SetConfigName("moonlang")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvPrefix("MOONLANG")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// IsReservedOverride reports whether name was added to the reserved-word
// table by project configuration, on top of the lexer's built-in keyword
// set. This lets a project ban additional identifiers (e.g. words that
// collide with a generated-code convention) without forking the lexer's
// keyword table.
func (c *Config) IsReservedOverride(name string) bool {
	for _, w := range c.ReservedWords {
		if w == name {
			return true
		}
	}
	return false
}

// InProject checks if the current directory is a MoonLang project.
func InProject() bool {
	if _, err := os.Stat("moonlang.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("moonlang.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot walks up from the working directory looking for
// moonlang.yml/moonlang.yaml.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "moonlang.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "moonlang.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a MoonLang project (no moonlang.yml found)")
		}
		dir = parent
	}
}

// validateConfig validates the configuration.
func validateConfig(cfg *Config) error {
	if cfg.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got: %d", cfg.Watch.DebounceMS)
	}
	return nil
}
