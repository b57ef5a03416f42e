package main

import (
	"net/http"

	"github.com/JaimeStill/survey/internal/api"
	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/infrastructure"
	"github.com/JaimeStill/survey/pkg/handlers"
	"github.com/JaimeStill/survey/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

// health backs the health endpoints. Readiness follows the lifecycle; the
// oracle and archive fields tell operators which backends runs will use.
type health struct {
	ready     func() bool
	oracle    string
	model     string
	container string
}

type healthStatus struct {
	Status    string `json:"status"`
	Oracle    string `json:"oracle,omitempty"`
	Model     string `json:"model,omitempty"`
	Container string `json:"container,omitempty"`
}

func newHealth(cfg *config.Config, ready func() bool) health {
	return health{
		ready:     ready,
		oracle:    cfg.Oracle.Provider,
		model:     cfg.Oracle.Model,
		container: cfg.Storage.ContainerName,
	}
}

func (h health) status(s string) healthStatus {
	return healthStatus{
		Status:    s,
		Oracle:    h.oracle,
		Model:     h.model,
		Container: h.container,
	}
}

func buildRouter(h health) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, healthStatus{Status: "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !h.ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, h.status("not ready"))
			return
		}
		handlers.RespondJSON(w, http.StatusOK, h.status("ready"))
	})

	return router
}
