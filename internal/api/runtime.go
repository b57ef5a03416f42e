package api

import (
	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/infrastructure"
	"github.com/JaimeStill/survey/internal/taxonomy"
	"github.com/JaimeStill/survey/internal/workflow"
	"github.com/JaimeStill/survey/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// workflow dependencies of categorization runs.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination    pagination.Config
	Workflow      *workflow.Runtime
	MaxCategories int
}

// NewRuntime scopes the infrastructure logger to the API module and wires
// the shared oracle into the run workflow.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := infra.Scoped("module", "api")

	return &Runtime{
		Infrastructure: scoped,
		Pagination:     cfg.API.Pagination,
		Workflow: &workflow.Runtime{
			Mapper:  taxonomy.NewMapper(scoped.Oracle, scoped.Logger),
			Storage: scoped.Storage,
			Logger:  scoped.Logger,
			Options: taxonomy.Options{Concurrency: cfg.Taxonomy.Concurrency},
		},
		MaxCategories: cfg.Taxonomy.MaxCategories,
	}
}
