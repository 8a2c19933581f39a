// Package config loads the settings of the sprout command line tool.
//
// Settings come from three layers, later layers winning: built-in defaults,
// a TOML or YAML file, and SPROUT_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/strager/sprout"
	"gopkg.in/yaml.v3"
)

// Config holds the complete tool configuration.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis" yaml:"analysis"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
}

// AnalysisConfig selects the analysis policies.
type AnalysisConfig struct {
	BlockScopes                bool `toml:"block_scopes" yaml:"block_scopes"`
	AllowFunctionRedeclaration bool `toml:"allow_function_redeclaration" yaml:"allow_function_redeclaration"`
}

// OutputConfig controls how diagnostics and logs are written.
type OutputConfig struct {
	Format   Format `toml:"format" yaml:"format"`
	Color    bool   `toml:"color" yaml:"color"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Format is a diagnostics output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{BlockScopes: true},
		Output: OutputConfig{
			Format:   FormatText,
			Color:    true,
			LogLevel: "warn",
		},
	}
}

// Load reads the file at path on top of the defaults, then applies
// environment overrides. The format follows the extension: .yaml and .yml
// are YAML, anything else is TOML. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(content, filepath.Ext(path)); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode merges content into c. Keys absent from content keep their current
// values; unknown keys are rejected.
func (c *Config) decode(content []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		meta, err := toml.Decode(string(content), c)
		if err != nil {
			return err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvBlockScopes                = "SPROUT_BLOCK_SCOPES"
	EnvAllowFunctionRedeclaration = "SPROUT_ALLOW_FUNCTION_REDECLARATION"
	EnvFormat                     = "SPROUT_FORMAT"
	EnvColor                      = "SPROUT_COLOR"
	EnvLogLevel                   = "SPROUT_LOG_LEVEL"
)

// ApplyEnv overrides settings from the variables lookup reports as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	bools := []struct {
		name string
		dst  *bool
	}{
		{EnvBlockScopes, &c.Analysis.BlockScopes},
		{EnvAllowFunctionRedeclaration, &c.Analysis.AllowFunctionRedeclaration},
		{EnvColor, &c.Output.Color},
	}
	for _, b := range bools {
		v, ok := lookup(b.name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", b.name, err)
		}
		*b.dst = parsed
	}

	if v, ok := lookup(EnvFormat); ok {
		c.Output.Format = Format(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Output.LogLevel = v
	}
	return nil
}

// Validate checks the settings that are not plain booleans.
func (c *Config) Validate() error {
	f, err := ParseFormat(string(c.Output.Format))
	if err != nil {
		return err
	}
	c.Output.Format = f
	if _, err := c.Output.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel (debug, info, warn or error).
func (o OutputConfig) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// Options converts the analysis settings for sprout.Analyze.
func (c *Config) Options(logger *slog.Logger) sprout.Options {
	return sprout.Options{
		BlockScopes:                c.Analysis.BlockScopes,
		AllowFunctionRedeclaration: c.Analysis.AllowFunctionRedeclaration,
		Logger:                     logger,
	}
}
