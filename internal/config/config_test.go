package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Errorf("ParseFlags() = %+v; want %+v", cfg, want)
	}
	if cfg.URL != "http://localhost:5001/api/photos/random-photo" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Timeout != 5*time.Second || cfg.Interval != 3*time.Second || cfg.FPS != 10 {
		t.Errorf("timing defaults = %v %v %d", cfg.Timeout, cfg.Interval, cfg.FPS)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-url", "http://photos.lan:8080/api/photos/random-photo",
		"-timeout", "2s",
		"-interval", "10s",
		"-fps", "30",
		"-background", "black",
		"-fullscreen=false",
	})
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if cfg.URL != "http://photos.lan:8080/api/photos/random-photo" || cfg.Timeout != 2*time.Second ||
		cfg.Interval != 10*time.Second || cfg.FPS != 30 || cfg.Background != "black" || cfg.Fullscreen {
		t.Errorf("ParseFlags() = %+v", cfg)
	}
}

func TestParseFlagsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photoframe.yaml")
	data := []byte("url: http://nas:5001/api/photos/random-photo\ninterval: 30s\nfps: 5\nbackground: \"#000\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-config", path, "-fps", "20"})
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if cfg.URL != "http://nas:5001/api/photos/random-photo" {
		t.Errorf("URL = %q; want value from file", cfg.URL)
	}
	if cfg.Interval != 30*time.Second {
		t.Errorf("Interval = %v; want 30s from file", cfg.Interval)
	}
	if cfg.FPS != 20 {
		t.Errorf("FPS = %d; command line should override the file", cfg.FPS)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v; want default when absent from file", cfg.Timeout)
	}
}

func TestParseFlagsMissingConfigFile(t *testing.T) {
	if _, err := ParseFlags([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatal("ParseFlags() with a missing file succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.URL = "/api/photos/random-photo" }},
		{"ftp url", func(c *Config) { c.URL = "ftp://host/photo" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"fps too high", func(c *Config) { c.FPS = 240 }},
		{"bad color", func(c *Config) { c.Background = "#12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() accepted %+v", cfg)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate() on defaults: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#00ff00", color.NRGBA{G: 0xff, A: 0xff}, false},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}, false},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{" Black ", color.RGBA{A: 0xff}, false},
		{"green", color.RGBA{G: 0x80, A: 0xff}, false},
		{"#zzzzzz", nil, true},
		{"chartreuse-ish", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v; wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %#v; want %#v", tt.in, got, tt.want)
		}
	}
}
