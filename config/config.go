// Package config loads server settings from defaults, an optional YAML file,
// a .env file and the process environment, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceAPI      = "api"
	SourcePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env             string        `yaml:"env"`
	Port            string        `yaml:"port"`
	UpstreamURL     string        `yaml:"upstream_url"`
	DirectorySource string        `yaml:"directory_source"`
	DatabaseURL     string        `yaml:"database_url"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
}

func Default() Config {
	return Config{
		Env:             "development",
		Port:            "3003",
		UpstreamURL:     "http://localhost:3000",
		DirectorySource: SourceAPI,
		AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:5174"},
		FetchTimeout:    10 * time.Second,
	}
}

// Load builds the config. path may be empty; a missing .env is ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("RESTAURANTS_API_URL"); v != "" {
		c.UpstreamURL = v
	}
	if v := os.Getenv("DIRECTORY_SOURCE"); v != "" {
		c.DirectorySource = strings.ToLower(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: FETCH_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		c.FetchTimeout = d
	}
	return nil
}

func (c Config) Validate() error {
	switch c.DirectorySource {
	case SourceAPI:
		if c.UpstreamURL == "" {
			return fmt.Errorf("%w: upstream_url is required for the api source", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown directory source %q", ErrInvalidConfig, c.DirectorySource)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
