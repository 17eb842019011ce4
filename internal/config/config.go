package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultURL        = "http://localhost:5001/api/photos/random-photo"
	DefaultTimeout    = 5 * time.Second
	DefaultInterval   = 3 * time.Second
	DefaultFPS        = 10
	DefaultBackground = "#00ff00"
	DefaultLogLevel   = "info"
)

// Config holds all runtime configuration.
type Config struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	Interval   time.Duration `yaml:"interval"` // wait after each fetch before the next
	FPS        int           `yaml:"fps"`
	Background string        `yaml:"background"`
	Fullscreen bool          `yaml:"fullscreen"`
	LogLevel   string        `yaml:"log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		URL:        DefaultURL,
		Timeout:    DefaultTimeout,
		Interval:   DefaultInterval,
		FPS:        DefaultFPS,
		Background: DefaultBackground,
		Fullscreen: true,
		LogLevel:   DefaultLogLevel,
	}
}

// ParseFlags parses flags for the photoframe binary. When -config names a
// YAML file it is loaded first and flags given on the command line win.
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("photoframe", flag.ContinueOnError)

	var path string
	cfg := Default()
	fs.StringVar(&path, "config", "", "Optional YAML config file")
	fs.StringVar(&cfg.URL, "url", cfg.URL, "Photo server URL")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Wait between photo requests")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Target frames per second")
	fs.StringVar(&cfg.Background, "background", cfg.Background, "Background color (#rrggbb or a color name)")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "Run fullscreen")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if path != "" {
		fileCfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		// Re-apply explicit flags on top of the file.
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		overlay(fileCfg, cfg, set)
		cfg = fileCfg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func overlay(dst, src *Config, set map[string]bool) {
	if set["url"] {
		dst.URL = src.URL
	}
	if set["timeout"] {
		dst.Timeout = src.Timeout
	}
	if set["interval"] {
		dst.Interval = src.Interval
	}
	if set["fps"] {
		dst.FPS = src.FPS
	}
	if set["background"] {
		dst.Background = src.Background
	}
	if set["fullscreen"] {
		dst.Fullscreen = src.Fullscreen
	}
	if set["log-level"] {
		dst.LogLevel = src.LogLevel
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url must be an absolute http(s) URL, got %q", c.URL)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	if c.Interval <= 0 {
		return errors.New("interval must be > 0")
	}
	if c.FPS <= 0 || c.FPS > 60 {
		return fmt.Errorf("fps must be 1-60, got %d", c.FPS)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background.
func (c *Config) BackgroundColor() (color.Color, error) {
	return ParseColor(c.Background)
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa or an SVG color name.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("background: unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("background: bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("background: bad hex color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
