package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dpup/postmile/server/internal/export"
	"github.com/dpup/postmile/server/internal/lib/postmile"
)

// Config represents the complete server configuration
type Config struct {
	Segments SegmentsConfig `yaml:"segments" koanf:"segments"`
}

// SegmentsConfig holds dataset, extraction and export settings
type SegmentsConfig struct {
	// DataDir holds the line/ and point/ GeoJSON trees
	DataDir string `yaml:"data_dir" koanf:"data_dir"`
	// OutputDir receives exports under splitted/
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`

	CacheTTL        time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" koanf:"cleanup_interval"`

	// MaxFragmentDistance drops fragments farther than this from both
	// boundary markers, in degrees. Zero keeps every fragment.
	MaxFragmentDistance float64 `yaml:"max_fragment_distance" koanf:"max_fragment_distance"`

	ExportFormats []string `yaml:"export_formats" koanf:"export_formats"`

	Preload PreloadConfig `yaml:"preload" koanf:"preload"`
}

// PreloadConfig lists routes kept warm in the dataset cache
type PreloadConfig struct {
	Interval time.Duration  `yaml:"interval" koanf:"interval"`
	Routes   []PreloadRoute `yaml:"routes" koanf:"routes"`
}

// PreloadRoute identifies a route dataset to preload
type PreloadRoute struct {
	District  string `yaml:"district" koanf:"district"`
	County    string `yaml:"county" koanf:"county"`
	Route     string `yaml:"route" koanf:"route"`
	Direction string `yaml:"direction" koanf:"direction"`
}

// Key converts the preload entry to a route key
func (p PreloadRoute) Key() postmile.RouteKey {
	return postmile.RouteKey{
		District:  p.District,
		County:    p.County,
		Route:     p.Route,
		Direction: p.Direction,
	}
}

// Options returns the extraction options configured for segments
func (c SegmentsConfig) Options() postmile.Options {
	return postmile.Options{MaxFragmentDistance: c.MaxFragmentDistance}
}

// PreloadKeys returns the route keys to preload
func (c SegmentsConfig) PreloadKeys() []postmile.RouteKey {
	keys := make([]postmile.RouteKey, len(c.Preload.Routes))
	for i, r := range c.Preload.Routes {
		keys[i] = r.Key()
	}
	return keys
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Segments: DefaultSegmentsConfig(),
	}
}

// DefaultSegmentsConfig returns the default segments section
func DefaultSegmentsConfig() SegmentsConfig {
	return SegmentsConfig{
		DataDir:         "data",
		OutputDir:       "output",
		CacheTTL:        time.Hour,
		CleanupInterval: 10 * time.Minute,
		ExportFormats:   []string{export.FormatGeoJSON},
		Preload: PreloadConfig{
			Interval: 30 * time.Minute,
		},
	}
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	return c.Segments.Validate()
}

// Validate reports every problem with the segments section at once
func (c SegmentsConfig) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, errors.New("segments.data_dir is required"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("segments.output_dir is required"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("segments.cache_ttl must be positive, got %s", c.CacheTTL))
	}
	if c.CleanupInterval < 0 {
		errs = append(errs, fmt.Errorf("segments.cleanup_interval must not be negative, got %s", c.CleanupInterval))
	}
	if c.MaxFragmentDistance < 0 || math.IsNaN(c.MaxFragmentDistance) || math.IsInf(c.MaxFragmentDistance, 0) {
		errs = append(errs, fmt.Errorf("segments.max_fragment_distance must be a non-negative number, got %v", c.MaxFragmentDistance))
	}
	for _, f := range c.ExportFormats {
		if !export.ValidFormat(f) {
			errs = append(errs, fmt.Errorf("segments.export_formats: unsupported format %q", f))
		}
	}
	if len(c.Preload.Routes) > 0 && c.Preload.Interval <= 0 {
		errs = append(errs, fmt.Errorf("segments.preload.interval must be positive when routes are listed, got %s", c.Preload.Interval))
	}
	for i, r := range c.Preload.Routes {
		if err := r.Key().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("segments.preload.routes[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
