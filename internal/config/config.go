package config

import (
	"os"
	"time"

	"adoption-eda/internal/pipeline"
	"adoption-eda/pkg/utils"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the service configuration. Zero fields take their defaults.
type Config struct {
	Source        string `yaml:"source"`
	Listen        string `yaml:"listen"`
	Timeout       string `yaml:"timeout"` // e.g. "30s"
	HeadRows      int    `yaml:"head_rows"`
	HistogramBins int    `yaml:"histogram_bins"`
	ExportDir     string `yaml:"export_dir"`
	LogLevel      string `yaml:"log_level"`
	Metrics       bool   `yaml:"metrics"`
	ChartWidth    int    `yaml:"chart_width"`
	ChartHeight   int    `yaml:"chart_height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source:        pipeline.DefaultSource,
		Listen:        ":8080",
		Timeout:       "30s",
		HeadRows:      5,
		HistogramBins: pipeline.DefaultHistogramBins,
		ExportDir:     "exports",
		LogLevel:      "info",
		Metrics:       true,
		ChartWidth:    1024,
		ChartHeight:   512,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that have no sensible fallback.
func (c Config) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.HeadRows < 0 {
		return errors.Errorf("head_rows must be >= 0, got %d", c.HeadRows)
	}
	if c.HistogramBins < 0 || c.HistogramBins > pipeline.MaxHistogramBins {
		return errors.Errorf("histogram_bins must be in [0, %d], got %d", pipeline.MaxHistogramBins, c.HistogramBins)
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return errors.Wrapf(err, "invalid timeout %q", c.Timeout)
		}
	}
	return nil
}

// FetchTimeout is the dataset request timeout.
func (c Config) FetchTimeout() time.Duration {
	return utils.ParseDuration(c.Timeout, 30*time.Second)
}

// DashboardOptions returns the builder options for this configuration.
func (c Config) DashboardOptions() pipeline.DashboardOptions {
	opts := pipeline.DefaultDashboardOptions()
	opts.HeadRows = c.HeadRows
	if c.HistogramBins > 0 {
		opts.HistogramBins = c.HistogramBins
	}
	return opts
}

// Runner builds the pipeline runner for this configuration.
func (c Config) Runner() *pipeline.Runner {
	return pipeline.NewRunner(pipeline.NewLoader(c.FetchTimeout()), c.Source, c.DashboardOptions())
}
