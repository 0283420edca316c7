// Package config reads the optional humanspan configuration file.
// The default location is ~/.humanspan/config.yaml; a missing file means
// defaults. Command-line flags override every value found here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/lucrnz/humanspan/internal/logging"
	"github.com/lucrnz/humanspan/pkg/humantime"
)

// ErrInvalidValue is returned when a config value is invalid.
var ErrInvalidValue = errors.New("invalid config value")

// Output formats understood by the CLI.
const (
	OutputText  = "text"
	OutputTicks = "ticks"
	OutputGo    = "go"
	OutputJSON  = "json"
)

// OutputFormats lists every accepted output format.
var OutputFormats = []string{OutputText, OutputTicks, OutputGo, OutputJSON}

// Defaults applied when a value is not configured.
const (
	DefaultOutput    = OutputText
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Log holds logging options.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Config contains configuration for humanspan.
type Config struct {
	Language string `yaml:"language,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Log      Log    `yaml:"log,omitempty"`

	// path is the file this config was loaded from
	path string
}

// Validate checks every configured value. Unset values are valid.
func (c *Config) Validate() error {
	if c.Language != "" {
		if _, err := humantime.ParseLanguage(c.Language); err != nil {
			return fmt.Errorf("%w: language: %w", ErrInvalidValue, err)
		}
	}
	if c.Output != "" && !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("%w: output must be one of %v, got %q", ErrInvalidValue, OutputFormats, c.Output)
	}
	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level: %w", ErrInvalidValue, err)
		}
	}
	if c.Log.Format != "" && !slices.Contains(logging.Formats, c.Log.Format) {
		return fmt.Errorf("%w: log.format must be one of %v, got %q", ErrInvalidValue, logging.Formats, c.Log.Format)
	}
	return nil
}

// Lang returns the configured language (defaults to English).
func (c *Config) Lang() humantime.Language {
	if c.Language == "" {
		return humantime.English
	}
	// Validate already rejected unknown names
	l, _ := humantime.ParseLanguage(c.Language)
	return l
}

// OutputFormat returns the configured output format (defaults to text).
func (c *Config) OutputFormat() string {
	if c.Output == "" {
		return DefaultOutput
	}
	return c.Output
}

// LogLevel returns the configured log level (defaults to warn).
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return DefaultLogLevel
	}
	return c.Log.Level
}

// LogFormat returns the configured log format (defaults to text).
func (c *Config) LogFormat() string {
	if c.Log.Format == "" {
		return DefaultLogFormat
	}
	return c.Log.Format
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// DefaultPath returns the path to the user config file: ~/.humanspan/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".humanspan", "config.yaml")
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing default file yields an empty config; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}
