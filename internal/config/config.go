// Package config provides configuration loading and structs for the vekta server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvHost  = "VEKTA_HOST"
	EnvPort  = "VEKTA_PORT"
	EnvDebug = "VEKTA_DEBUG"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Batch  BatchConfig  `yaml:"batch"`
	Cache  CacheConfig  `yaml:"cache"`
	Watch  WatchConfig  `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string          `yaml:"host"`
	Port           int             `yaml:"port"`
	RequestTimeout time.Duration   `yaml:"request_timeout"`
	MaxBodyBytes   int64           `yaml:"max_body_bytes"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds request throughput. A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Enabled reports whether rate limiting is configured.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerSecond > 0
}

// BatchConfig holds settings for vectorizing many files at once.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// CacheConfig sizes the in-memory vectorize response cache. A negative size
// disables caching.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// Enabled reports whether responses are cached.
func (c CacheConfig) Enabled() bool {
	return c.Size > 0
}

// WatchConfig holds directory watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Load reads and parses the config file at path, applies environment overrides and
// defaults, and expands paths. A missing file yields the defaults. Variables from a
// .env file next to the config (or in the working directory) are loaded first and
// never override variables already set in the environment.
func Load(path string) (*Config, error) {
	loadDotEnv(path)

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func loadDotEnv(configPath string) {
	candidates := []string{filepath.Join(filepath.Dir(configPath), ".env"), ".env"}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			_ = godotenv.Load(c)
		}
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDebug, v, err)
		}
		cfg.Debug = debug
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
