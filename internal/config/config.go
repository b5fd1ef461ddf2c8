// Package config loads settings from LS_ALMANAC_* environment variables and
// observing sites from a YAML file.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the almanac.
type Config struct {
	// Site selection. Latitude and Longitude, when both set, override Site.
	Site      string   `env:"LS_ALMANAC_SITE,default=greenwich"`
	SitesFile string   `env:"LS_ALMANAC_SITES_FILE"`
	Latitude  *float64 `env:"LS_ALMANAC_LAT,noinit"`
	Longitude *float64 `env:"LS_ALMANAC_LON,noinit"`
	Elevation float64  `env:"LS_ALMANAC_ELEVATION,default=0"`

	// Ephemeris source: meeus, horizons or auto.
	Ephem       string        `env:"LS_ALMANAC_EPHEM,default=meeus"`
	HorizonsURL string        `env:"LS_ALMANAC_HORIZONS_URL,default=https://ssd.jpl.nasa.gov/api/horizons.api"`
	CacheTTL    time.Duration `env:"LS_ALMANAC_CACHE_TTL,default=10m"`

	LogLevel   string `env:"LS_ALMANAC_LOG_LEVEL,default=info"`
	Iterations int    `env:"LS_ALMANAC_ITERATIONS,default=5"`
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that envconfig cannot.
func (c *Config) Validate() error {
	if _, err := ephem.ParseMode(c.Ephem); err != nil {
		return err
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations %d: must be at least 1", c.Iterations)
	}
	if (c.Latitude == nil) != (c.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be set together")
	}
	if c.Latitude != nil {
		loc := astro.GeoLocation{Latitude: *c.Latitude, Longitude: *c.Longitude}
		if err := loc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Mode returns the parsed ephemeris mode.
func (c *Config) Mode() ephem.Mode {
	m, _ := ephem.ParseMode(c.Ephem)
	return m
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Location resolves the observing site: explicit coordinates first, then
// the named site in sites.
func (c *Config) Location(sites Sites) (astro.GeoLocation, error) {
	if c.Latitude != nil && c.Longitude != nil {
		name := "custom"
		if c.Site != "" && c.Site != "greenwich" {
			name = c.Site
		}
		loc := astro.GeoLocation{
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
			Elevation: c.Elevation,
			Name:      name,
		}
		return loc, loc.Validate()
	}
	s, ok := sites.Lookup(c.Site)
	if !ok {
		return astro.GeoLocation{}, fmt.Errorf("site %q not found (known: %v)", c.Site, sites.Names())
	}
	return s.Location(), nil
}
