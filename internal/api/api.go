// Package api assembles the API module from the domain systems and mounts
// their routes under the configured base path.
package api

import (
	"net/http"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/infrastructure"
	"github.com/JaimeStill/survey/pkg/middleware"
	"github.com/JaimeStill/survey/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
