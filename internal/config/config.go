// Package config loads the solver settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for settings out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings. Zero limits mean unlimited.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Search   Search `yaml:"search"`
	Batch    Batch  `yaml:"batch"`
	Server   Server `yaml:"server"`
}

// Search bounds a single search.
type Search struct {
	MaxExpansions int           `yaml:"max_expansions"`
	Timeout       time.Duration `yaml:"timeout"`
}

// Batch configures the batch runner.
type Batch struct {
	Workers int `yaml:"workers"`
}

// Server configures the HTTP host.
type Server struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML settings from r over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that all settings are in range.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch {
	case c.Search.MaxExpansions < 0:
		return fmt.Errorf("%w: search.max_expansions %d is negative", ErrInvalid, c.Search.MaxExpansions)
	case c.Search.Timeout < 0:
		return fmt.Errorf("%w: search.timeout %s is negative", ErrInvalid, c.Search.Timeout)
	case c.Batch.Workers < 0:
		return fmt.Errorf("%w: batch.workers %d is negative", ErrInvalid, c.Batch.Workers)
	case c.Server.RequestTimeout < 0:
		return fmt.Errorf("%w: server.request_timeout %s is negative", ErrInvalid, c.Server.RequestTimeout)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (zerolog.Level, error) {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return zerolog.ParseLevel(c.LogLevel)
	}
	return zerolog.NoLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
}

// Workers returns the batch worker count, resolving 0 to the number of CPUs.
func (c Config) Workers() int {
	if c.Batch.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Batch.Workers
}
