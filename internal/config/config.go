package config

import (
	"errors"
	"fmt"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/couchcryptid/storm-hyetograph/internal/adapter/chart"
)

// ErrInvalidConfig is returned when a configuration value fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	envPrefix  = "HYETOGRAPH_"
	configPath = "HYETOGRAPH_CONFIG"

	minChartSize = 100
	maxChartSize = 10000
)

// Config holds the CLI's ambient settings. Rainfall parameters are never read
// from here; they always come from the command line.
type Config struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	ChartWidth  int    `koanf:"chart_width"`
	ChartHeight int    `koanf:"chart_height"`
	ChartTitle  string `koanf:"chart_title"`
	BarColor    string `koanf:"bar_color"`

	// MetricsFile, when set, receives a Prometheus text-format dump after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		LogLevel:    "warn",
		LogFormat:   "text",
		ChartWidth:  800,
		ChartHeight: 600,
		ChartTitle:  "Hyetograph",
		BarColor:    "#0000ff",
	}
}

// Load builds a Config by layering, from low to high precedence:
//  1. defaults
//  2. a YAML file, if HYETOGRAPH_CONFIG names one
//  3. HYETOGRAPH_* environment variables
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := sharedcfg.EnvOrDefault(configPath, ""); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: load %s: %w", ErrInvalidConfig, path, err)
		}
	}

	// HYETOGRAPH_CHART_WIDTH -> chart_width
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and formats that the renderer and logger depend on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.ChartWidth < minChartSize || c.ChartWidth > maxChartSize {
		return fmt.Errorf("%w: chart_width must be between %d and %d, got %d", ErrInvalidConfig, minChartSize, maxChartSize, c.ChartWidth)
	}
	if c.ChartHeight < minChartSize || c.ChartHeight > maxChartSize {
		return fmt.Errorf("%w: chart_height must be between %d and %d, got %d", ErrInvalidConfig, minChartSize, maxChartSize, c.ChartHeight)
	}
	if _, err := chart.ParseColor(c.BarColor); err != nil {
		return fmt.Errorf("%w: bar_color: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ChartOptions converts the chart settings into renderer options.
// Call after Validate.
func (c *Config) ChartOptions() chart.Options {
	opts := chart.DefaultOptions()
	opts.Width = c.ChartWidth
	opts.Height = c.ChartHeight
	if c.ChartTitle != "" {
		opts.Title = c.ChartTitle
	}
	if col, err := chart.ParseColor(c.BarColor); err == nil {
		opts.BarColor = col
	}
	return opts
}
