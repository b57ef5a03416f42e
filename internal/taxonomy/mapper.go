package taxonomy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/survey/pkg/formatting"
)

// Oracle is the external text classification service.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, prompt string) (string, error)

func (f OracleFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Mapper asks an Oracle to cluster raw values into category labels.
type Mapper struct {
	oracle Oracle
	logger *slog.Logger
}

// NewMapper creates a Mapper backed by oracle.
func NewMapper(oracle Oracle, logger *slog.Logger) *Mapper {
	return &Mapper{
		oracle: oracle,
		logger: logger.With("system", "taxonomy"),
	}
}

// Request performs a single oracle call for values and returns the mapping
// the oracle produced, unreconciled. Failures are returned as
// ErrOracleUnavailable or ErrMalformedResponse. An empty set makes no call.
func (m *Mapper) Request(ctx context.Context, values ValueSet, field string, maxCategories int) (Mapping, error) {
	if len(values) == 0 {
		return Mapping{}, nil
	}

	prompt, err := Prompt(field, values, maxCategories)
	if err != nil {
		return nil, err
	}

	resp, err := m.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}

	return parseMapping(resp)
}

// Build requests a mapping and resolves it with Recover. It never fails:
// any request error degrades to the identity mapping and is logged.
func (m *Mapper) Build(ctx context.Context, values ValueSet, field string, maxCategories int) Outcome {
	mapping, err := m.Request(ctx, values, field, maxCategories)
	out := Recover(values, mapping, err)

	if out.Fallback {
		m.logger.WarnContext(
			ctx, "category mapping fell back to identity",
			"field", field,
			"values", len(values),
			"error", out.Err,
		)
		return out
	}

	if out.Filled > 0 {
		m.logger.WarnContext(
			ctx, "oracle left values unlabeled",
			"field", field,
			"count", out.Filled,
		)
	}

	if out.Dropped > 0 {
		m.logger.WarnContext(
			ctx, "oracle returned unrequested values",
			"field", field,
			"count", out.Dropped,
		)
	}

	if labels := len(out.Mapping.Labels()); labels > maxCategories {
		m.logger.WarnContext(
			ctx, "category bound exceeded",
			"field", field,
			"labels", labels,
			"max_categories", maxCategories,
		)
	}

	return out
}

func parseMapping(resp string) (Mapping, error) {
	raw, err := formatting.Parse[map[string]any](resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: null object", ErrMalformedResponse)
	}

	mapping := make(Mapping, len(raw))
	for k, v := range raw {
		switch label := v.(type) {
		case nil:
			continue
		case string:
			mapping[k] = label
		default:
			return nil, fmt.Errorf("%w: label for %q is %T", ErrMalformedResponse, k, v)
		}
	}

	return mapping, nil
}
