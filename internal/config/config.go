// Package config loads editor settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the cutter, overlay and host settings. Zero values are not
// meaningful; start from Default.
type Config struct {
	// Cutter
	Splined   bool    `yaml:"splined"`
	Tolerance float64 `yaml:"tolerance"`
	OutputDir string  `yaml:"output_dir"`
	// Overlay
	LineWidth   float64 `yaml:"line_width"`
	LineColor   string  `yaml:"line_color"`
	PointColor  string  `yaml:"point_color"`
	IdleColor   string  `yaml:"idle_color"`
	ActiveColor string  `yaml:"active_color"`
	BusyColor   string  `yaml:"busy_color"`
	TextColor   string  `yaml:"text_color"`
	Alpha       float64 `yaml:"alpha"`
	// Host
	LogLevel string `yaml:"log_level"`
	Watch    bool   `yaml:"watch"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Splined:     true,
		Tolerance:   0.008,
		LineWidth:   4,
		LineColor:   "#e03131",
		PointColor:  "#c92a2a",
		IdleColor:   "#40c057",
		ActiveColor: "#e03131",
		BusyColor:   "#a61e1e",
		TextColor:   "#f1f3f5",
		Alpha:       0.9,
		LogLevel:    "info",
		Watch:       true,
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".meshcut", "config.yaml")
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path means DefaultPath, which may be
// missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var err error
	if cfg.Tolerance, err = envFloat("MESHCUT_TOLERANCE", cfg.Tolerance); err != nil {
		return nil, err
	}
	if cfg.Splined, err = envBool("MESHCUT_SPLINED", cfg.Splined); err != nil {
		return nil, err
	}
	cfg.OutputDir = envStr("MESHCUT_OUTPUT_DIR", cfg.OutputDir)
	cfg.LogLevel = envStr("MESHCUT_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be between 0 and 1, got %g", c.Tolerance)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("line_width must be positive, got %g", c.LineWidth)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be between 0 and 1, got %g", c.Alpha)
	}
	colors := map[string]string{
		"line_color":   c.LineColor,
		"point_color":  c.PointColor,
		"idle_color":   c.IdleColor,
		"active_color": c.ActiveColor,
		"busy_color":   c.BusyColor,
		"text_color":   c.TextColor,
	}
	for name, value := range colors {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// ParseColor parses a #rrggbb color
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q, expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustColor parses a color that has already been validated
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return b, nil
}
