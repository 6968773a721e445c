// Package config loads collage settings from a YAML file and COLLAGE_*
// environment variables, then fills the gaps from a profile preset.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AnyUserName/collage-cli/internal/canvas"
	"github.com/AnyUserName/collage-cli/internal/encoder"
	"github.com/AnyUserName/collage-cli/internal/profile"
	"github.com/AnyUserName/collage-cli/internal/source"
	"gopkg.in/yaml.v3"
)

// Config is the effective configuration of a run. Zero values mean
// "not set" until Finalize fills them from the profile.
type Config struct {
	Profile         string   `yaml:"profile"`
	CellSize        int      `yaml:"cell_size"`
	Backing         string   `yaml:"backing"`
	MmapThresholdMB int      `yaml:"mmap_threshold_mb"`
	Format          string   `yaml:"format"`
	Quality         int      `yaml:"quality"`
	Lossless        *bool    `yaml:"lossless"`
	Extensions      []string `yaml:"extensions"`
	AutoOrient      bool     `yaml:"auto_orient"`
	Manifest        bool     `yaml:"manifest"`
}

// Load reads the YAML file at path (skipped when path is empty) and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	envString("COLLAGE_PROFILE", &c.Profile)
	envString("COLLAGE_BACKING", &c.Backing)
	envString("COLLAGE_FORMAT", &c.Format)
	c.CellSize = envInt("COLLAGE_CELL_SIZE", c.CellSize)
	c.MmapThresholdMB = envInt("COLLAGE_MMAP_THRESHOLD_MB", c.MmapThresholdMB)
	c.Quality = envInt("COLLAGE_QUALITY", c.Quality)
	if s := os.Getenv("COLLAGE_LOSSLESS"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			c.Lossless = &b
		}
	}
	if s := os.Getenv("COLLAGE_EXTENSIONS"); s != "" {
		c.Extensions = strings.Split(s, ",")
	}
}

// Finalize fills unset fields from the selected profile and validates the result.
func (c *Config) Finalize() error {
	p := profile.Get(c.Profile)
	c.Profile = p.Name
	if c.CellSize == 0 {
		c.CellSize = p.CellSize
	}
	if c.Backing == "" {
		c.Backing = string(p.Backing)
	}
	if c.Format == "" {
		c.Format = p.Format
	}
	if c.Quality == 0 {
		c.Quality = p.Quality
	}
	if c.Lossless == nil {
		lossless := p.Lossless
		c.Lossless = &lossless
	}
	if len(c.Extensions) == 0 {
		c.Extensions = source.DefaultExtensions
	}
	c.Extensions = source.NormalizeExtensions(c.Extensions)
	return c.Validate()
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if c.CellSize < 1 {
		return fmt.Errorf("cell size must be at least 1, got %d", c.CellSize)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality must be 1-100, got %d", c.Quality)
	}
	if c.MmapThresholdMB < 0 {
		return fmt.Errorf("mmap threshold must not be negative, got %d", c.MmapThresholdMB)
	}
	if _, err := canvas.ParseBacking(c.Backing); err != nil {
		return err
	}
	if !strings.EqualFold(c.Format, encoder.Auto) && encoder.NewRegistry().Get(c.Format) == nil {
		return fmt.Errorf("unsupported output format %q", c.Format)
	}
	return nil
}

// CanvasBacking returns the parsed backing. Call after Validate.
func (c *Config) CanvasBacking() canvas.Backing {
	b, _ := canvas.ParseBacking(c.Backing)
	return b
}

// MmapThreshold returns the Auto backing threshold in bytes.
func (c *Config) MmapThreshold() int64 {
	if c.MmapThresholdMB <= 0 {
		return canvas.DefaultThreshold
	}
	return int64(c.MmapThresholdMB) << 20
}

// EncodeOptions returns the encoder options for the run.
func (c *Config) EncodeOptions() encoder.Options {
	return encoder.Options{Quality: c.Quality, Lossless: c.Lossless != nil && *c.Lossless}
}

func envString(key string, dst *string) {
	if s := os.Getenv(key); s != "" {
		*dst = s
	}
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the current value if the env var is unset, empty, or invalid.
func envInt(key string, current int) int {
	s := os.Getenv(key)
	if s == "" {
		return current
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return current
}
