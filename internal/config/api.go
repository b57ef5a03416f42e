package config

import (
	"fmt"

	"github.com/JaimeStill/survey/pkg/envvar"
	"github.com/JaimeStill/survey/pkg/formatting"
	"github.com/JaimeStill/survey/pkg/middleware"
	"github.com/JaimeStill/survey/pkg/pagination"
)

const (
	EnvAPIBasePath      = "SURVEY_API_BASE_PATH"
	EnvAPIMaxUploadSize = "SURVEY_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SURVEY_CORS_ENABLED",
	Origins:          "SURVEY_CORS_ORIGINS",
	AllowedMethods:   "SURVEY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SURVEY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SURVEY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SURVEY_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SURVEY_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SURVEY_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request size, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment overrides, and validation for the
// API section and its nested CORS and pagination sections.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	envvar.String(&c.BasePath, EnvAPIBasePath)
	envvar.String(&c.MaxUploadSize, EnvAPIMaxUploadSize)

	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites fields that are set in overlay across nested sections.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}
