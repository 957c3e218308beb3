// Package config loads ghprofile settings.
// Configuration is resolved from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (GHPROFILE_*)
// 3. Config file ($XDG_CONFIG_HOME/ghprofile/config.yaml, or --config)
// 4. Defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/willyv3/ghprofile/internal/contrib"
)

// Config holds all ghprofile settings.
type Config struct {
	// Username is the profile to show when none is given on the command line.
	Username string `yaml:"username"`

	// Host is the GitHub host, github.com or an Enterprise hostname.
	Host string `yaml:"host"`

	// Theme names the palette, either "github" or any gogh theme.
	Theme string `yaml:"theme"`

	// ThemeFile points at a 16-colour YAML scheme that overrides Theme.
	ThemeFile string `yaml:"theme_file"`

	// Timeout bounds every API request.
	Timeout time.Duration `yaml:"timeout"`

	// EarliestYear is the oldest year offered by the year selector.
	EarliestYear int `yaml:"earliest_year"`

	// RepoLimit is the number of popular repository cards.
	RepoLimit int `yaml:"repo_limit"`

	// EventLimit is the number of public events read for the activity panels.
	EventLimit int `yaml:"event_limit"`

	// LogFile receives logs in interactive mode. Empty discards them.
	LogFile string `yaml:"log_file"`

	// Width fixes the render width. Zero means the terminal width.
	Width int `yaml:"width"`
}

// Default config values.
const (
	DefaultHost       = "github.com"
	DefaultTheme      = "github"
	DefaultTimeout    = 10 * time.Second
	DefaultRepoLimit  = 6
	DefaultEventLimit = 30

	// MinEarliestYear is the year GitHub launched.
	MinEarliestYear = 2008

	envPrefix = "GHPROFILE_"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Host:         DefaultHost,
		Theme:        DefaultTheme,
		Timeout:      DefaultTimeout,
		EarliestYear: contrib.DefaultEarliestYear,
		RepoLimit:    DefaultRepoLimit,
		EventLimit:   DefaultEventLimit,
	}
}

// Load resolves configuration with proper precedence.
// path overrides the default config file location. A missing default file is
// not an error; a missing explicit file is.
func Load(path string, flagOverrides *Config) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	fileConfig, err := loadFromPath(path)
	switch {
	case err == nil:
		cfg = merge(cfg, fileConfig)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	cfg, err = applyEnv(cfg, os.LookupEnv)
	if err != nil {
		return nil, err
	}

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	if err := cfg.Validate(time.Now()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the page cannot be drawn with. now bounds the
// earliest year.
func (c *Config) Validate(now time.Time) error {
	if c.EarliestYear < MinEarliestYear || c.EarliestYear > now.Year() {
		return fmt.Errorf("earliest_year %d is not between %d and %d", c.EarliestYear, MinEarliestYear, now.Year())
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s is negative", c.Timeout)
	}
	limits := []struct {
		name string
		n    int
	}{
		{"repo_limit", c.RepoLimit},
		{"event_limit", c.EventLimit},
		{"width", c.Width},
	}
	for _, l := range limits {
		if l.n < 0 {
			return fmt.Errorf("%s %d is negative", l.name, l.n)
		}
	}
	return nil
}

// DefaultPath is the config file used when --config is not given.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ghprofile", "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, fs.ErrNotExist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyEnv applies GHPROFILE_* overrides read through lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) (*Config, error) {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("USERNAME"); ok {
		cfg.Username = v
	}
	if v, ok := get("HOST"); ok {
		cfg.Host = v
	}
	if v, ok := get("THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := get("THEME_FILE"); ok {
		cfg.ThemeFile = v
	}
	if v, ok := get("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %sTIMEOUT: %w", envPrefix, err)
		}
		cfg.Timeout = d
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"EARLIEST_YEAR", &cfg.EarliestYear},
		{"REPO_LIMIT", &cfg.RepoLimit},
		{"EVENT_LIMIT", &cfg.EventLimit},
		{"WIDTH", &cfg.Width},
	}
	for _, f := range ints {
		v, ok := get(f.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s%s: %w", envPrefix, f.name, err)
		}
		*f.dst = n
	}

	return cfg, nil
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeInt overwrites dst with src when src is non-zero.
func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Username, src.Username)
	mergeStr(&dst.Host, src.Host)
	mergeStr(&dst.Theme, src.Theme)
	mergeStr(&dst.ThemeFile, src.ThemeFile)
	mergeStr(&dst.LogFile, src.LogFile)
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	mergeInt(&dst.EarliestYear, src.EarliestYear)
	mergeInt(&dst.RepoLimit, src.RepoLimit)
	mergeInt(&dst.EventLimit, src.EventLimit)
	mergeInt(&dst.Width, src.Width)
	return dst
}
