package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/searchexpr/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".searchexpr.yaml"

// Config holds the CLI settings. Every field is optional.
type Config struct {
	// Views is the directory of view documents.
	Views string `yaml:"views"`
	// SeparatorChars separate the expressions of a series. Default ", ".
	SeparatorChars string `yaml:"separator_chars"`
	// Hints are applied to every resolution.
	Hints    []string `yaml:"hints"`
	LogLevel string   `yaml:"log_level"`

	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	Server  ServerConfig  `yaml:"server"`
}

// StoreConfig selects the view store backing PUT /views.
type StoreConfig struct {
	// Kind is one of memory, file or redis.
	Kind  string      `yaml:"kind"`
	Path  string      `yaml:"path"`
	Redis RedisConfig `yaml:"redis"`
	// Redact lists regular expressions; matching attribute keys are masked before saving.
	Redact []string `yaml:"redact"`
}

// RedisConfig configures the redis view store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
	TTL      string `yaml:"ttl"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		SeparatorChars: ", ",
		LogLevel:       "info",
		Store:          StoreConfig{Kind: "memory"},
		Server:         ServerConfig{Port: "8080"},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// silently falls back to the defaults when it does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerations and hint names.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Kind {
	case "", "memory", "file", "redis":
	default:
		errs = append(errs, fmt.Errorf("unknown store kind %q", c.Store.Kind))
	}
	if c.Store.Kind == "redis" && c.Store.Redis.Addr == "" {
		errs = append(errs, errors.New("store.redis.addr is required for the redis store"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ParsedHints(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Separators returns the configured expression separators as runes.
func (c *Config) Separators() []rune {
	return []rune(c.SeparatorChars)
}

// ParsedHints converts the hint names.
func (c *Config) ParsedHints() ([]domain.Hint, error) {
	hints := make([]domain.Hint, 0, len(c.Hints))
	for _, name := range c.Hints {
		hint, ok := domain.ParseHint(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown hint %q", name)
		}
		hints = append(hints, hint)
	}
	return hints, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return level, nil
}
