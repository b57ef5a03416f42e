// Package runs executes categorization runs over submitted corpora and keeps
// an audit trail of each run's per-field mappings in Postgres, with the clean
// corpus archived in blob storage.
package runs

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/survey/internal/distribution"
	"github.com/JaimeStill/survey/internal/taxonomy"
)

// Run is one completed categorization run.
type Run struct {
	ID            uuid.UUID `json:"id"`
	Topic         string    `json:"topic"`
	Fields        []string  `json:"fields"`
	MaxCategories int       `json:"max_categories"`
	RecordCount   int       `json:"record_count"`
	FallbackCount int       `json:"fallback_count"`
	StorageKey    string    `json:"storage_key"`
	CreatedAt     time.Time `json:"created_at"`
}

// Field is the audit record of one categorized field within a run.
type Field struct {
	RunID    uuid.UUID `json:"run_id"`
	Position int       `json:"position"`
	taxonomy.FieldResult
}

// ExecuteCommand requests a run. MaxCategories zero means the configured
// default.
type ExecuteCommand struct {
	Topic         string            `json:"topic"`
	Fields        []string          `json:"fields"`
	MaxCategories int               `json:"max_categories"`
	Records       []taxonomy.Record `json:"records"`
}

// Execution is the response to a completed run.
type Execution struct {
	Run    Run     `json:"run"`
	Fields []Field `json:"fields"`
}

// Distribution is a value count over one field of a run's clean corpus.
type Distribution struct {
	Field    string                `json:"field"`
	Strategy distribution.Strategy `json:"strategy"`
	Total    int                   `json:"total"`
	Entries  []distribution.Entry  `json:"entries"`
}
