// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// --------------------------------------------------------------------------
// Season + source defaults
// --------------------------------------------------------------------------

// CurrentSeason is the season label stamped on every emitted record.
const CurrentSeason = "2025-26"

// Default input/output locations, relative to the repository root.
const (
	DefaultMappingPath = "data/team-name-map.json"
	DefaultTorvikPath  = "data/sources/torvik_tableau.csv"
	DefaultKenPomPath  = "data/sources/kenpom_tableau.csv"
	DefaultCBBAPath    = "data/sources/cbb_analytics_tableau_cleaned.csv"
	DefaultLogoDir     = "data/logos"
	DefaultOutputPath  = "web/public/data/teams.json"
)

// --------------------------------------------------------------------------
// Config is populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Pipeline inputs
	MappingPath string `validate:"required"`
	TorvikPath  string `validate:"required"`
	KenPomPath  string `validate:"required"`
	CBBAPath    string `validate:"required"`
	LogoDir     string
	OutputPath  string `validate:"required"`
	Season      string `validate:"required"`

	// Logging
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`

	// API server
	APIHost     string `validate:"required"`
	APIPort     int    `validate:"min=1,max=65535"`
	Environment string `validate:"oneof=development staging production"`

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int           `validate:"min=1"`
	RateLimitWindow   time.Duration `validate:"min=1s"`

	// Cache
	CacheEnabled bool

	// Snapshot reload polling; zero disables it.
	SnapshotReloadInterval time.Duration `validate:"min=0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		MappingPath: envOr("CBB_MAPPING_PATH", DefaultMappingPath),
		TorvikPath:  envOr("CBB_TORVIK_PATH", DefaultTorvikPath),
		KenPomPath:  envOr("CBB_KENPOM_PATH", DefaultKenPomPath),
		CBBAPath:    envOr("CBB_CBBA_PATH", DefaultCBBAPath),
		LogoDir:     envOr("CBB_LOGO_DIR", DefaultLogoDir),
		OutputPath:  envOr("CBB_OUTPUT_PATH", DefaultOutputPath),
		Season:      envOr("CBB_SEASON", CurrentSeason),

		LogLevel:  strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("LOG_FORMAT", "console")),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		SnapshotReloadInterval: time.Duration(envInt("SNAPSHOT_RELOAD_SECONDS", 30)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints. Flag overrides call it again after
// they are applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
