// Package config loads nomiskit settings from a TOML file and the environment.
//
// Resolution order, later wins:
//
//  1. Built-in defaults ([Default])
//  2. $XDG_CONFIG_HOME/nomis/config.toml (or ~/.config/nomis/config.toml)
//  3. NOMIS_* environment variables
//
// A missing config file is not an error. Example file:
//
//	base_url = "https://www.nomisweb.co.uk/api/v01/dataset/"
//	timeout  = "30s"
//	retries  = 1
//
//	[cache]
//	backend = "redis"
//	ttl     = "12h"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/nomiskit/pkg/errors"
	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

const appName = "nomis"

// Config holds all runtime settings.
type Config struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
	Retries int    `toml:"retries"`

	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and tunes the HTTP response cache.
type CacheConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	TTL     string `toml:"ttl"`
	Prefix  string `toml:"prefix"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures `nomis serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL: nomis.DefaultBaseURL,
		Timeout: "30s",
		Retries: 1,
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     "24h",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "nomis",
			Collection: "http_cache",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads path (or the default location when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
			}
		case os.IsNotExist(err) && !explicit:
			// no config file; defaults apply
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the config file location using the XDG convention.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func (c *Config) applyEnv() {
	c.BaseURL = getEnv("NOMIS_BASE_URL", c.BaseURL)
	c.Timeout = getEnv("NOMIS_TIMEOUT", c.Timeout)
	c.Retries = getEnvInt("NOMIS_RETRIES", c.Retries)
	c.Cache.Backend = getEnv("NOMIS_CACHE_BACKEND", c.Cache.Backend)
	c.Cache.Dir = getEnv("NOMIS_CACHE_DIR", c.Cache.Dir)
	c.Cache.TTL = getEnv("NOMIS_CACHE_TTL", c.Cache.TTL)
	c.Cache.Prefix = getEnv("NOMIS_CACHE_PREFIX", c.Cache.Prefix)
	c.Redis.Addr = getEnv("NOMIS_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("NOMIS_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("NOMIS_REDIS_DB", c.Redis.DB)
	c.Mongo.URI = getEnv("NOMIS_MONGO_URI", c.Mongo.URI)
	c.Server.Addr = getEnv("NOMIS_SERVER_ADDR", c.Server.Addr)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := errors.ValidateURL(c.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "base_url")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if c.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "retries must be >= 0, got %d", c.Retries)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout)
}

// CacheTTL parses Cache.TTL. Zero selects the transport default (24h).
func (c *Config) CacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", c.Cache.TTL)
}

// CacheDir returns the file cache directory, defaulting to
// $XDG_CACHE_HOME/nomis or ~/.cache/nomis.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", field)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative", field)
	}
	return d, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
