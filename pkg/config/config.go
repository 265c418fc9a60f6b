// Package config defines the tool configuration for mdtree.
// These types are pure data structures; loading lives alongside them so the
// CLI and embedders share one source of truth.
package config

import "fmt"

// RenderConfig controls HTML rendering.
type RenderConfig struct {
	// LanguageHook enables canonicalizing fenced-code info strings to
	// known language names before emitting class attributes.
	LanguageHook bool `yaml:"language_hook"`
}

// FormatConfig controls the normalizing serializer.
type FormatConfig struct {
	// Write rewrites files in place instead of printing to stdout.
	Write bool `yaml:"write"`
}

// Config is the root configuration structure for mdtree.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Format FormatConfig `yaml:"format"`

	// LogLevel sets the default log level ("debug", "info", "warn",
	// "error").
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render:   RenderConfig{LanguageHook: true},
		LogLevel: "info",
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
