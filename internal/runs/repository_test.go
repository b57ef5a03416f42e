package runs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/survey/internal/distribution"
	"github.com/JaimeStill/survey/internal/runs"
	"github.com/JaimeStill/survey/internal/taxonomy"
	"github.com/JaimeStill/survey/internal/workflow"
	"github.com/JaimeStill/survey/pkg/pagination"
	"github.com/JaimeStill/survey/pkg/storage"
)

// Validation happens before the database or workflow is touched, so a nil
// connection is enough here.
func newValidatingSystem() runs.System {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return runs.New(nil, &workflow.Runtime{Logger: logger}, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, 20)
}

func TestExecuteValidation(t *testing.T) {
	sys := newValidatingSystem()

	tests := []struct {
		name string
		cmd  runs.ExecuteCommand
	}{
		{"no fields", runs.ExecuteCommand{Records: []taxonomy.Record{{"a": "x"}}}},
		{"blank field", runs.ExecuteCommand{Fields: []string{""}}},
		{"negative bound", runs.ExecuteCommand{Fields: []string{"a"}, MaxCategories: -1}},
		{"null record", runs.ExecuteCommand{Fields: []string{"a"}, Records: []taxonomy.Record{nil}}},
		{"nested value", runs.ExecuteCommand{
			Fields:  []string{"a"},
			Records: []taxonomy.Record{{"a": map[string]any{"b": "c"}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Execute(context.Background(), tt.cmd)
			if !errors.Is(err, runs.ErrInvalidRun) {
				t.Errorf("Execute error = %v, want ErrInvalidRun", err)
			}
		})
	}
}

func TestDistributionRequiresField(t *testing.T) {
	_, err := newValidatingSystem().Distribution(context.Background(), uuid.New(), "", distribution.StrategyAuto)
	if !errors.Is(err, runs.ErrInvalidRun) {
		t.Errorf("Distribution error = %v, want ErrInvalidRun", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{runs.ErrNotFound, http.StatusNotFound},
		{storage.ErrNotFound, http.StatusNotFound},
		{runs.ErrDuplicate, http.StatusConflict},
		{runs.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{runs.ErrInvalidRun, http.StatusBadRequest},
		{distribution.ErrUnknownStrategy, http.StatusBadRequest},
		{distribution.ErrUndetermined, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := runs.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
