package workflow

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/survey/internal/taxonomy"
)

// State keys carried between graph nodes.
const (
	KeyInput       = "input"
	KeyRecords     = "records"
	KeyFields      = "fields"
	KeyStorageKey  = "storage_key"
	KeyCompletedAt = "completed_at"
)

var (
	ErrCategorizeFailed = errors.New("categorize failed")
	ErrArchiveFailed    = errors.New("archive failed")
)

// Input describes one categorization run.
type Input struct {
	RunID         uuid.UUID
	Records       []taxonomy.Record
	Fields        []string
	MaxCategories int
}

// Result is the outcome of a completed run. StorageKey is empty when the
// corpus was not archived.
type Result struct {
	RunID       uuid.UUID
	Records     []taxonomy.Record
	Fields      []taxonomy.FieldResult
	StorageKey  string
	CompletedAt time.Time
}
