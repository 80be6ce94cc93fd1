// Package config resolves the settings shared by the CLI and the MCP server.
//
// Sources, lowest precedence first: built-in defaults, an optional rpad.yaml,
// a .env file, and RPAD_* environment variables. Command-line arguments are
// applied on top by the callers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultPadding is the padding width in pixels when none is configured.
const DefaultPadding = 30

// DefaultMaxPadding is the largest padding accepted when max_padding is unset.
const DefaultMaxPadding = 4096

// ErrPaddingOutOfRange is returned for a padding below 0 or above the limit.
var ErrPaddingOutOfRange = errors.New("padding out of range")

// Config holds resolved settings.
type Config struct {
	// Padding is the width of the new border on each side, in pixels.
	Padding int `mapstructure:"padding"`

	// MaxPadding caps Padding and any padding requested by a caller.
	// Zero means DefaultMaxPadding.
	MaxPadding int `mapstructure:"max_padding"`

	// OutputDir is where results are written. Defaults to the user's home.
	OutputDir string `mapstructure:"output_dir"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// EnvFile is loaded into the environment if it exists. Variables that are
	// already set win.
	EnvFile string

	// ConfigPaths are searched in order for rpad.yaml.
	ConfigPaths []string
}

// DefaultOptions reads ./.env and looks for rpad.yaml in the working
// directory and in ~/.config/rpad.
func DefaultOptions() Options {
	opts := Options{
		EnvFile:     ".env",
		ConfigPaths: []string{"."},
	}
	if home, err := os.UserHomeDir(); err == nil {
		opts.ConfigPaths = append(opts.ConfigPaths, filepath.Join(home, ".config", "rpad"))
	}
	return opts
}

// Load resolves the configuration using DefaultOptions.
func Load() (*Config, error) {
	return LoadWith(DefaultOptions())
}

// LoadWith resolves the configuration from the given sources.
func LoadWith(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	v.SetConfigName("rpad")
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("RPAD")
	v.AutomaticEnv()

	v.SetDefault("padding", DefaultPadding)
	v.SetDefault("max_padding", DefaultMaxPadding)
	v.SetDefault("output_dir", defaultOutputDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if len(opts.ConfigPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxPadding < 0 {
		return fmt.Errorf("max_padding must be >= 0 (got %d)", c.MaxPadding)
	}
	if err := c.CheckPadding(c.Padding); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: want text or json", c.LogFormat)
	}
	return nil
}

// PaddingLimit returns the effective maximum padding.
func (c *Config) PaddingLimit() int {
	if c.MaxPadding <= 0 {
		return DefaultMaxPadding
	}
	return c.MaxPadding
}

// CheckPadding returns ErrPaddingOutOfRange unless 0 <= p <= PaddingLimit().
func (c *Config) CheckPadding(p int) error {
	if p < 0 || p > c.PaddingLimit() {
		return fmt.Errorf("padding %d: %w (allowed 0..%d)", p, ErrPaddingOutOfRange, c.PaddingLimit())
	}
	return nil
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
