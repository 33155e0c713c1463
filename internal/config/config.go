// Package config resolves moody's settings from defaults, an optional YAML
// file, a .env file and MOODY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "moody"

// Config holds application configuration
type Config struct {
	// Storage
	DatabasePath string `yaml:"database_path"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// Presentation
	WeekStart   string `yaml:"week_start"`   // monday or sunday
	DefaultView string `yaml:"default_view"` // day, week or month
	Timezone    string `yaml:"timezone"`     // IANA name, empty for the system zone
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DatabasePath: filepath.Join(dataDir(), appName, appName+".db"),
		LogLevel:     "info",
		LogFile:      filepath.Join(stateDir(), appName, appName+".log"),
		WeekStart:    "monday",
		DefaultView:  "day",
	}
}

// DefaultPath returns the config file location under XDG_CONFIG_HOME
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load builds the configuration. An explicit path must exist; the default
// path is optional.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DatabasePath = getEnv("MOODY_DB_PATH", c.DatabasePath)
	c.LogLevel = getEnv("MOODY_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("MOODY_LOG_FILE", c.LogFile)
	c.WeekStart = getEnv("MOODY_WEEK_START", c.WeekStart)
	c.DefaultView = getEnv("MOODY_DEFAULT_VIEW", c.DefaultView)
	c.Timezone = getEnv("MOODY_TIMEZONE", c.Timezone)
}

// Validate checks enumerated fields and normalizes paths
func (c *Config) Validate() error {
	if _, err := c.WeekStartDay(); err != nil {
		return err
	}
	switch strings.ToLower(c.DefaultView) {
	case "day", "week", "month":
		c.DefaultView = strings.ToLower(c.DefaultView)
	default:
		return fmt.Errorf("invalid default_view %q (want day, week or month)", c.DefaultView)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return errors.New("database_path must not be empty")
	}
	if abs, err := filepath.Abs(expandHome(c.DatabasePath)); err == nil {
		c.DatabasePath = abs
	}
	if c.LogFile != "" {
		c.LogFile = expandHome(c.LogFile)
	}
	return nil
}

// WeekStartDay returns the first day of the week
func (c *Config) WeekStartDay() (time.Weekday, error) {
	switch strings.ToLower(c.WeekStart) {
	case "monday", "mon", "":
		return time.Monday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	}
	return 0, fmt.Errorf("invalid week_start %q (want monday or sunday)", c.WeekStart)
}

// Location returns the timezone whose calendar days key mood entries
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// dataDir uses the XDG data directory or falls back to ~/.local/share
func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state")
}
