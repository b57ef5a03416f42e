package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/survey/internal/taxonomy"
)

// CategorizeNode runs a taxonomy session over the input fields and stores
// the rewritten records and per-field results in state.
func CategorizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		in, err := inputFrom(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrCategorizeFailed, err)
		}

		session := taxonomy.NewSession(in.Records, rt.Mapper, rt.Logger, rt.Options)
		results, err := session.CategorizeFields(ctx, in.Fields, in.MaxCategories)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrCategorizeFailed, err)
		}

		fallbacks := 0
		for _, r := range results {
			if r.Fallback {
				fallbacks++
			}
		}

		rt.Logger.InfoContext(
			ctx, "categorize node complete",
			"run_id", in.RunID,
			"fields", len(results),
			"fallbacks", fallbacks,
		)

		s = s.Set(KeyRecords, session.Records())
		s = s.Set(KeyFields, results)
		return s, nil
	})
}

func inputFrom(s state.State) (Input, error) {
	val, ok := s.Get(KeyInput)
	if !ok {
		return Input{}, fmt.Errorf("missing %s in state", KeyInput)
	}
	in, ok := val.(Input)
	if !ok {
		return Input{}, fmt.Errorf("%s is not Input", KeyInput)
	}
	return in, nil
}
