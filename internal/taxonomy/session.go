package taxonomy

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// FieldResult records how one field was categorized.
type FieldResult struct {
	Field        string  `json:"field"`
	DerivedField string  `json:"derived_field"`
	Mapping      Mapping `json:"mapping"`
	ValueCount   int     `json:"value_count"`
	LabelCount   int     `json:"label_count"`
	Fallback     bool    `json:"fallback"`
	Reason       string  `json:"reason,omitempty"`
}

// Options tunes a Session.
type Options struct {
	// Concurrency bounds how many oracle calls CategorizeFields issues at
	// once. Values below 2 process fields strictly one after another.
	Concurrency int
}

// Session owns a corpus and categorizes its fields in rounds. Each round
// adds a derived field that later rounds can read.
type Session struct {
	records []Record
	mapper  *Mapper
	logger  *slog.Logger
	opts    Options
}

// NewSession creates a Session over records. The records are mutated in
// place as fields are categorized.
func NewSession(records []Record, mapper *Mapper, logger *slog.Logger, opts Options) *Session {
	return &Session{
		records: records,
		mapper:  mapper,
		logger:  logger.With("system", "session"),
		opts:    opts,
	}
}

// Records returns the corpus with every derived field written so far.
func (s *Session) Records() []Record {
	return s.records
}

// Categorize extracts, maps, and rewrites a single field. Oracle failures
// do not return an error; they surface as a fallback FieldResult.
func (s *Session) Categorize(ctx context.Context, field string, maxCategories int) (FieldResult, error) {
	if maxCategories < 1 {
		return FieldResult{}, fmt.Errorf("%w: %d", ErrInvalidBound, maxCategories)
	}
	if err := ctx.Err(); err != nil {
		return FieldResult{}, err
	}

	values, err := DistinctValues(s.records, field)
	if err != nil {
		return FieldResult{}, fmt.Errorf("extract %s: %w", field, err)
	}

	out := s.mapper.Build(ctx, values, field, maxCategories)
	return s.apply(field, values, out)
}

// CategorizeFields categorizes each field in order. With Concurrency above 1
// the oracle calls run in parallel while rewrites stay sequential. Fields
// that read another requested field's derived output are always processed
// sequentially.
func (s *Session) CategorizeFields(ctx context.Context, fields []string, maxCategories int) ([]FieldResult, error) {
	if maxCategories < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBound, maxCategories)
	}

	if s.opts.Concurrency < 2 || len(fields) < 2 || chained(fields) {
		return s.sequential(ctx, fields, maxCategories)
	}

	return s.concurrent(ctx, fields, maxCategories)
}

func (s *Session) sequential(ctx context.Context, fields []string, maxCategories int) ([]FieldResult, error) {
	results := make([]FieldResult, 0, len(fields))
	for _, field := range fields {
		res, err := s.Categorize(ctx, field, maxCategories)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Session) concurrent(ctx context.Context, fields []string, maxCategories int) ([]FieldResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sets := make([]ValueSet, len(fields))
	for i, field := range fields {
		values, err := DistinctValues(s.records, field)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", field, err)
		}
		sets[i] = values
	}

	outcomes := make([]Outcome, len(fields))

	var g errgroup.Group
	g.SetLimit(min(s.opts.Concurrency, len(fields)))

	for i, field := range fields {
		g.Go(func() error {
			outcomes[i] = s.mapper.Build(ctx, sets[i], field, maxCategories)
			return nil
		})
	}
	g.Wait()

	results := make([]FieldResult, 0, len(fields))
	for i, field := range fields {
		res, err := s.apply(field, sets[i], outcomes[i])
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

func (s *Session) apply(field string, values ValueSet, out Outcome) (FieldResult, error) {
	derived := DerivedField(field)

	if _, _, err := Apply(s.records, field, derived, out.Mapping); err != nil {
		return FieldResult{}, fmt.Errorf("rewrite %s: %w", field, err)
	}

	res := FieldResult{
		Field:        field,
		DerivedField: derived,
		Mapping:      out.Mapping,
		ValueCount:   len(values),
		LabelCount:   len(out.Mapping.Labels()),
		Fallback:     out.Fallback,
		Reason:       out.Reason(),
	}

	s.logger.Info(
		"field categorized",
		"field", field,
		"values", res.ValueCount,
		"labels", res.LabelCount,
		"fallback", res.Fallback,
	)

	return res, nil
}

// chained reports whether any field repeats or names another field's
// derived output.
func chained(fields []string) bool {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			return true
		}
		seen[f] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := seen[DerivedField(f)]; ok {
			return true
		}
	}
	return false
}
