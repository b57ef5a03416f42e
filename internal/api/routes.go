package api

import (
	"net/http"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) {
	routes.Register(
		mux,
		domain.Runs.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
