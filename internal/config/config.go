// Package config loads service configuration from an optional YAML file with
// environment-variable overrides applied on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Blob   BlobConfig   `yaml:"blob"`
	Search SearchConfig `yaml:"search"`
	Cache  CacheConfig  `yaml:"cache"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// BlobConfig selects and parameterizes the persistence backend.
type BlobConfig struct {
	// Backend is one of "bolt", "redis", "memory".
	Backend       string `yaml:"backend"`
	BoltPath      string `yaml:"bolt_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

type SearchConfig struct {
	MinScore   float64 `yaml:"min_score"`
	MaxResults int     `yaml:"max_results"`
	Fuzziness  int     `yaml:"fuzziness"`
}

type CacheConfig struct {
	MaxEntries int64         `yaml:"max_entries"`
	TTL        time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file and no env vars are
// present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Blob: BlobConfig{
			Backend:   "bolt",
			BoltPath:  "./data/knowledge.db",
			RedisAddr: "localhost:6379",
		},
		Search: SearchConfig{
			MinScore:   0.05,
			MaxResults: 3,
			Fuzziness:  1,
		},
		Cache: CacheConfig{
			MaxEntries: 1024,
			TTL:        10 * time.Minute,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("BLOB_BACKEND"); v != "" {
		cfg.Blob.Backend = v
	}
	if v := os.Getenv("BOLT_PATH"); v != "" {
		cfg.Blob.BoltPath = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Blob.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Blob.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Blob.RedisDB = db
		}
	}
}
