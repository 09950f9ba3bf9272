// Package config loads router configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RedisConfig enables Redis-backed session persistence when an address is
// set; otherwise sessions live in process memory.
type RedisConfig struct {
	Address           string `yaml:"address"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

// NATSConfig enables routing-decision publishing when an address is set.
type NATSConfig struct {
	Address      string `yaml:"address"`
	RouteSubject string `yaml:"route_subject"`
}

// DisambiguationConfig tunes the ambiguity policy.
type DisambiguationConfig struct {
	ConfidenceMin     float64 `yaml:"confidence_min"`
	ConfidenceMargin  float64 `yaml:"confidence_margin"`
	MaxCandidates     int     `yaml:"max_candidates"`
	Profile           string  `yaml:"profile"`
	DefaultMode       string  `yaml:"default_mode"`
	EnableResultCache bool    `yaml:"enable_result_cache"`
}

// CatalogConfig optionally replaces the built-in catalogs with files.
type CatalogConfig struct {
	JSONPath string `yaml:"json_path"`
	TOONPath string `yaml:"toon_path"`
}

// Config is the root configuration.
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Redis          RedisConfig          `yaml:"redis"`
	NATS           NATSConfig           `yaml:"nats"`
	Disambiguation DisambiguationConfig `yaml:"disambiguation"`
	Catalog        CatalogConfig        `yaml:"catalog"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		Disambiguation: DisambiguationConfig{
			ConfidenceMin:     0.30,
			ConfidenceMargin:  0.15,
			MaxCandidates:     3,
			Profile:           "primary",
			DefaultMode:       "json",
			EnableResultCache: true,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error: defaults plus environment overrides apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment variables over file values; deployment
// settings win over the file.
func (c *Config) applyEnv() {
	setIfPresent(&c.Server.Port, "PORT")
	setIfPresent(&c.Redis.Address, "REDIS_URL")
	setIfPresent(&c.NATS.Address, "NATS_URL")
	setIfPresent(&c.NATS.RouteSubject, "ROUTE_SUBJECT")
	setIfPresent(&c.Disambiguation.DefaultMode, "ROUTER_MODE")
	setIfPresent(&c.Disambiguation.Profile, "ROUTER_PROFILE")
	setIfPresent(&c.Catalog.JSONPath, "CATALOG_JSON_PATH")
	setIfPresent(&c.Catalog.TOONPath, "CATALOG_TOON_PATH")
}

func setIfPresent(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}
