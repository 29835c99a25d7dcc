// Package config loads panelayout's TOML configuration file.
//
// Values are resolved in three layers: [Default] first, then the file, then
// whatever the caller (usually the CLI) overrides from flags. [Load] with an
// empty path returns the defaults, and a missing default file is not an
// error.
//
// A complete file looks like:
//
//	[engine]
//	min_width = 50
//	min_height = 50
//	leftover = "drop"
//
//	[cache]
//	backend = "file"          # file, redis or none
//	dir = "/var/cache/panelayout"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/panelayout/pkg/cache"
	perrors "github.com/matzehuels/panelayout/pkg/errors"
	"github.com/matzehuels/panelayout/pkg/layout"
)

// AppName names the configuration and cache directories.
const AppName = "panelayout"

// DefaultAddr is the address the HTTP service listens on.
const DefaultAddr = ":8080"

// Config is the full configuration.
type Config struct {
	Engine Engine `toml:"engine"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Engine holds the size constraints.
type Engine struct {
	MinWidth  float64               `toml:"min_width"`
	MinHeight float64               `toml:"min_height"`
	Leftover  layout.LeftoverPolicy `toml:"leftover"`
}

// Cache selects the result cache backend.
type Cache struct {
	Backend   cache.Backend `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"` // zero keeps the per-stage defaults
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration. The cache directory follows
// XDG_CACHE_HOME and is left empty when no home directory can be found.
func Default() Config {
	cons := layout.DefaultConstraints()
	dir, _ := CacheDir()
	return Config{
		Engine: Engine{
			MinWidth:  cons.MinWidth,
			MinHeight: cons.MinHeight,
			Leftover:  cons.Leftover,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			Dir:     dir,
		},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path means [Path]; if that file does not exist the defaults are
// returned unchanged. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, perrors.Wrap(perrors.ErrCodeNotFound, err, "config %s", path)
		}
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, perrors.New(perrors.ErrCodeInvalidFormat,
			"config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, perrors.Wrap(perrors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if err := c.Constraints().Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "redis cache needs redis_addr")
	}
	if c.Cache.TTL < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Server.Addr == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "server addr is empty")
	}
	return nil
}

// Constraints returns the engine section as layout constraints.
func (c Config) Constraints() layout.Constraints {
	return layout.Constraints{
		MinWidth:  c.Engine.MinWidth,
		MinHeight: c.Engine.MinHeight,
		Leftover:  c.Engine.Leftover,
	}
}

// CacheOptions returns the cache section in the form [cache.Open] takes.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis:   cache.RedisOptions{Addr: c.Cache.RedisAddr, Prefix: AppName + ":"},
	}
}

// Path returns the default config file location,
// $XDG_CONFIG_HOME/panelayout/config.toml or ~/.config/panelayout/config.toml.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the default cache directory using the XDG convention
// (~/.cache/panelayout).
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
