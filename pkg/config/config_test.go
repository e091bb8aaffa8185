package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/render"
	"github.com/desvart/qsnap/pkg/table"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qsnap.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Image != render.DefaultImage() {
		t.Errorf("Image = %+v", cfg.Image)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if !slices.Equal(cfg.Output.Formats, []string{"png"}) {
		t.Errorf("Output.Formats = %v", cfg.Output.Formats)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[image]
width = 800

[style]
font_size = 13

[style.colors]
Partial = "#93C5FD"

[cache]
backend = "redis"
ttl = "24h"

[cache.redis]
addr = "cache:6379"
db = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Image.Width != 800 || cfg.Image.Height != render.DefaultHeight || cfg.Image.Scale != render.DefaultScale {
		t.Errorf("Image = %+v", cfg.Image)
	}
	if cfg.Style.FontSize != 13 {
		t.Errorf("FontSize = %v", cfg.Style.FontSize)
	}
	if got := cfg.Style.Color("Partial"); got != "#93C5FD" {
		t.Errorf("Color(Partial) = %q", got)
	}
	if got := cfg.Style.Color(table.Good); got != "#86EFAC" {
		t.Errorf("Color(Good) = %q, want default kept", got)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Addr != "cache:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Cache.Redis)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code qerrors.Code
	}{
		{"syntax", "[image\nwidth = 1", qerrors.ErrCodeInvalidInput},
		{"unknown key", "[image]\ncolour = 1", qerrors.ErrCodeInvalidInput},
		{"bad backend", "[cache]\nbackend = \"memcached\"", qerrors.ErrCodeInvalidInput},
		{"bad size", "[image]\nwidth = -5", qerrors.ErrCodeInvalidInput},
		{"bad color", "[style.colors]\nGood = \"greenish\"", qerrors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !qerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !qerrors.Is(err, qerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}
