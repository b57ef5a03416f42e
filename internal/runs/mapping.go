package runs

import (
	"database/sql"
	"encoding/json"
	"net/url"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JaimeStill/survey/pkg/query"
	"github.com/JaimeStill/survey/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "runs", "r").
	Project("id", "ID").
	Project("topic", "Topic").
	Project("fields", "Fields").
	Project("max_categories", "MaxCategories").
	Project("record_count", "RecordCount").
	Project("fallback_count", "FallbackCount").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for run queries. Topic uses
// case-insensitive contains matching; Field matches runs that categorized
// the named field.
type Filters struct {
	Topic *string `json:"topic,omitempty"`
	Field *string `json:"field,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Topic", f.Topic).
		WhereHas("Fields", f.Field)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("topic"); t != "" {
		f.Topic = &t
	}
	if fl := values.Get("field"); fl != "" {
		f.Field = &fl
	}

	return f
}

func scanRun(s repository.Scanner) (Run, error) {
	var r Run
	err := s.Scan(
		&r.ID,
		&r.Topic,
		pgtype.NewMap().SQLScanner(&r.Fields),
		&r.MaxCategories,
		&r.RecordCount,
		&r.FallbackCount,
		&r.StorageKey,
		&r.CreatedAt,
	)
	return r, err
}

const runColumns = `id, topic, fields, max_categories, record_count, fallback_count, storage_key, created_at`

const fieldColumns = `run_id, position, field, derived_field, mapping, value_count, label_count, fallback, reason`

func scanField(s repository.Scanner) (Field, error) {
	var (
		f       Field
		mapping []byte
		reason  sql.NullString
	)
	err := s.Scan(
		&f.RunID,
		&f.Position,
		&f.Field,
		&f.DerivedField,
		&mapping,
		&f.ValueCount,
		&f.LabelCount,
		&f.Fallback,
		&reason,
	)
	if err != nil {
		return f, err
	}

	if err := json.Unmarshal(mapping, &f.Mapping); err != nil {
		return f, err
	}
	f.Reason = reason.String
	return f, nil
}
