// Package config loads the optional YAML configuration for the calendar run.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host zoneinfo

	"gopkg.in/yaml.v3"
)

const (
	DefaultOrigin       = "https://www.ufc.com"
	DefaultOutputPath   = "./exports/UFC.ics"
	DefaultCalendarName = "UFC"
	DefaultTimezone     = "America/Los_Angeles"
	DefaultUserAgent    = "ufc-events/1.0 (github.com/pfrederiksen/ufc-events)"
)

// HTTPConfig controls markup retrieval
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	MaxRetries int           `yaml:"max_retries"` // 0 = single attempt
	Backoff    time.Duration `yaml:"backoff"`     // initial backoff
	MaxBackoff time.Duration `yaml:"max_backoff"` // cap
}

// Config is the full run configuration
type Config struct {
	SiteOrigin      string     `yaml:"site_origin"`
	ListingURLs     []string   `yaml:"listing_urls"`
	OutputPath      string     `yaml:"output_path"`
	CalendarName    string     `yaml:"calendar_name"`
	Concurrency     int        `yaml:"concurrency"`
	Timezone        string     `yaml:"timezone"`
	LogLevel        string     `yaml:"log_level"`
	MetricsTextfile string     `yaml:"metrics_textfile"` // empty disables
	HTTP            HTTPConfig `yaml:"http"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		SiteOrigin: DefaultOrigin,
		ListingURLs: []string{
			DefaultOrigin + "/events?page=0",
			DefaultOrigin + "/events?page=1",
		},
		OutputPath:   DefaultOutputPath,
		CalendarName: DefaultCalendarName,
		Concurrency:  8,
		Timezone:     DefaultTimezone,
		LogLevel:     "INFO",
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			UserAgent:  DefaultUserAgent,
			MaxRetries: 0,
			Backoff:    500 * time.Millisecond,
			MaxBackoff: 5 * time.Second,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the pipeline cannot run without
func (c *Config) Validate() error {
	if len(c.ListingURLs) == 0 {
		return errors.New("config: listing_urls must not be empty")
	}
	origin, err := url.Parse(c.SiteOrigin)
	if err != nil || !origin.IsAbs() || origin.Host == "" {
		return fmt.Errorf("config: site_origin must be an absolute URL, got %q", c.SiteOrigin)
	}
	if c.OutputPath == "" {
		return errors.New("config: output_path must not be empty")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("config: concurrency must be positive, got %d", c.Concurrency)
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("config: http.max_retries must not be negative, got %d", c.HTTP.MaxRetries)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the timezone used for the Last Updated stamp
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
