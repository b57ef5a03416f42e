// Package workflow executes a categorization run as a state graph:
// categorize, then archive when storage is configured, then finalize.
package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/survey/internal/taxonomy"
)

// Execute runs the graph for in and extracts the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, in Input) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyInput, in)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(final, in)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("survey-categorize")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("categorize", CategorizeNode(rt)); err != nil {
		return nil, err
	}
	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	if rt.Storage != nil {
		if err := graph.AddNode("archive", ArchiveNode(rt)); err != nil {
			return nil, err
		}
		if err := graph.AddEdge("categorize", "archive", nil); err != nil {
			return nil, err
		}
		if err := graph.AddEdge("archive", "finalize", nil); err != nil {
			return nil, err
		}
	} else {
		if err := graph.AddEdge("categorize", "finalize", nil); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint("categorize"); err != nil {
		return nil, err
	}
	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State, in Input) (*Result, error) {
	records, err := recordsFrom(s)
	if err != nil {
		return nil, err
	}

	val, ok := s.Get(KeyFields)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyFields)
	}
	fields, ok := val.([]taxonomy.FieldResult)
	if !ok {
		return nil, fmt.Errorf("%s is not []taxonomy.FieldResult", KeyFields)
	}

	val, ok = s.Get(KeyCompletedAt)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyCompletedAt)
	}
	completed, ok := val.(time.Time)
	if !ok {
		return nil, fmt.Errorf("%s is not time.Time", KeyCompletedAt)
	}

	var key string
	if val, ok := s.Get(KeyStorageKey); ok {
		key, _ = val.(string)
	}

	return &Result{
		RunID:       in.RunID,
		Records:     records,
		Fields:      fields,
		StorageKey:  key,
		CompletedAt: completed,
	}, nil
}
