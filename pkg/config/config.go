// Package config loads qsnap settings from TOML.
//
// A configuration file overrides any subset of the defaults returned by
// [Default]; omitted keys keep their default values, and category colors
// merge with the default palette:
//
//	[image]
//	width = 800
//	scale = 1
//
//	[style]
//	font_size = 13
//	[style.colors]
//	Partial = "#93C5FD"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//	[cache.redis]
//	addr = "localhost:6379"
//
// Command-line flags override the loaded configuration.
package config

import (
	"errors"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/render"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// DefaultCacheTTL is how long cached artifacts stay valid.
const DefaultCacheTTL = 7 * 24 * time.Hour

var validBackends = []string{CacheNone, CacheFile, CacheRedis}

// Config is the complete set of file-configurable settings.
type Config struct {
	Image  render.Image `toml:"image"`
	Style  chart.Style  `toml:"style"`
	Cache  Cache        `toml:"cache"`
	Output Output       `toml:"output"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
	Redis   Redis         `toml:"redis"`
}

// Redis addresses the Redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Output sets where exported files go and in which formats.
type Output struct {
	Dir     string   `toml:"dir"`
	Formats []string `toml:"formats"`
}

// Default returns the built-in configuration: a 600×600 image at scale 2,
// the house style, no cache, PNG output in the working directory.
func Default() Config {
	return Config{
		Image: render.DefaultImage(),
		Style: chart.DefaultStyle(),
		Cache: Cache{
			Backend: CacheNone,
			TTL:     DefaultCacheTTL,
			Redis:   Redis{Addr: "localhost:6379"},
		},
		Output: Output{Dir: ".", Formats: []string{"png"}},
	}
}

// Load reads a TOML file on top of [Default]. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, qerrors.Wrap(qerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, qerrors.New(qerrors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Image.Validate(); err != nil {
		return err
	}
	if err := c.Style.Validate(); err != nil {
		return err
	}
	if !slices.Contains(validBackends, c.Cache.Backend) {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "cache backend %q must be one of %s",
			c.Cache.Backend, strings.Join(validBackends, ", "))
	}
	if c.Cache.TTL < 0 {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if c.Cache.Backend == CacheRedis && c.Cache.Redis.Addr == "" {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "redis cache needs an address")
	}
	return nil
}
