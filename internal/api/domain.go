package api

import (
	"github.com/JaimeStill/survey/internal/runs"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Runs runs.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Runs: runs.New(
			runtime.Database.Connection(),
			runtime.Workflow,
			runtime.Logger,
			runtime.Pagination,
			runtime.MaxCategories,
		),
	}
}
