package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Feed describes a single ICS subscription source.
type Feed struct {
	// URL is the ICS subscription endpoint.
	URL string `yaml:"url"`
	// Name is the calendar name the feed's occurrences are imported into.
	Name string `yaml:"name"`
	// Color is an optional display color for the calendar.
	Color string `yaml:"color,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA display timezone (e.g. "Europe/Berlin").
	// Empty means the system's local zone.
	Timezone string `yaml:"timezone"`

	// WeekStart controls which weekday opens calendar views:
	// "monday" (default) or "sunday".
	WeekStart string `yaml:"week_start"`

	// DayStartHour / DayEndHour bound the command-center day grid.
	DayStartHour int `yaml:"day_start_hour"`
	DayEndHour   int `yaml:"day_end_hour"`

	// HorizonDays is how far ahead feed import expands recurrences.
	HorizonDays int `yaml:"horizon_days"`

	// RefreshCron is a five-field cron expression for periodic feed
	// refresh while the dashboard is open.
	RefreshCron string `yaml:"refresh"`

	// Feeds is the list of subscribed ICS sources.
	Feeds []Feed `yaml:"feeds"`
}

// Default returns an in-memory default configuration.
func Default() *Config {
	return &Config{
		WeekStart:    "monday",
		DayStartHour: 7,
		DayEndHour:   22,
		HorizonDays:  60,
		RefreshCron:  "*/30 * * * *",
		Feeds:        []Feed{},
	}
}

// Normalize fills in missing/zero values with defaults so partially
// filled configs still behave correctly.
func (c *Config) Normalize() {
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = "monday"
	}
	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		c.DayStartHour = 7
	}
	if c.DayEndHour <= c.DayStartHour || c.DayEndHour > 24 {
		c.DayEndHour = 22
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 60
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/30 * * * *"
	}
	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		c.RefreshCron = "*/30 * * * *"
	}
	if c.Feeds == nil {
		c.Feeds = []Feed{}
	}
}

// Validate reports configuration errors that cannot be repaired by
// Normalize, such as feeds missing a URL or name.
func (c *Config) Validate() error {
	for i, f := range c.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feed %d: url is required", i)
		}
		if f.Name == "" {
			return fmt.Errorf("feed %d: name is required", i)
		}
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// Location resolves the configured display timezone, falling back to the
// system's local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load loads configuration from the given YAML path. On first run the
// file does not exist; a default config is written and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".atrium-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
