// Package config loads service configuration from config.toml, an optional
// config.<SURVEY_ENV>.toml overlay, and SURVEY_ environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/survey/pkg/database"
	"github.com/JaimeStill/survey/pkg/envvar"
	"github.com/JaimeStill/survey/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSurveyEnv             = "SURVEY_ENV"
	EnvSurveyShutdownTimeout = "SURVEY_SHUTDOWN_TIMEOUT"
	EnvSurveyVersion         = "SURVEY_VERSION"
)

// DatabaseEnv names the SURVEY_DB_ variables that override database settings.
var DatabaseEnv = &database.Env{
	Host:            "SURVEY_DB_HOST",
	Port:            "SURVEY_DB_PORT",
	Name:            "SURVEY_DB_NAME",
	User:            "SURVEY_DB_USER",
	Password:        "SURVEY_DB_PASSWORD",
	SSLMode:         "SURVEY_DB_SSL_MODE",
	MaxOpenConns:    "SURVEY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SURVEY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SURVEY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SURVEY_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "SURVEY_STORAGE_CONTAINER_NAME",
	ConnectionString: "SURVEY_STORAGE_CONNECTION_STRING",
	AccountURL:       "SURVEY_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration for the survey service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Oracle          OracleConfig    `toml:"oracle"`
	Taxonomy        TaxonomyConfig  `toml:"taxonomy"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the SURVEY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSurveyEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites fields that are set in overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Oracle.Merge(&overlay.Oracle)
	c.Taxonomy.Merge(&overlay.Taxonomy)
}

func (c *Config) finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	envvar.String(&c.ShutdownTimeout, EnvSurveyShutdownTimeout)
	envvar.String(&c.Version, EnvSurveyVersion)

	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(DatabaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Oracle.Finalize(); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.Taxonomy.Finalize(); err != nil {
		return fmt.Errorf("taxonomy: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvSurveyEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
