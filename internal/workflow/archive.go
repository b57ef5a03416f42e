package workflow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/survey/internal/corpus"
	"github.com/JaimeStill/survey/internal/taxonomy"
	"github.com/JaimeStill/survey/pkg/storage"
)

// ArchiveNode uploads the clean corpus as a JSON array under the run's
// storage key.
func ArchiveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		in, err := inputFrom(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrArchiveFailed, err)
		}

		records, err := recordsFrom(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrArchiveFailed, err)
		}

		var buf bytes.Buffer
		if err := corpus.Encode(&buf, records, corpus.FormatJSON); err != nil {
			return s, fmt.Errorf("%w: %w", ErrArchiveFailed, err)
		}

		key := storage.RunKey(in.RunID.String())
		size := buf.Len()
		if err := rt.Storage.Upload(ctx, key, &buf, corpus.FormatJSON.ContentType()); err != nil {
			return s, fmt.Errorf("%w: %w", ErrArchiveFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "archive node complete",
			"run_id", in.RunID,
			"key", key,
			"size", size,
		)

		return s.Set(KeyStorageKey, key), nil
	})
}

// FinalizeNode stamps the completion time and summarizes the run.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		completed := rt.now().UTC()

		var fallbacks int
		if val, ok := s.Get(KeyFields); ok {
			if fields, ok := val.([]taxonomy.FieldResult); ok {
				for _, f := range fields {
					if f.Fallback {
						fallbacks++
					}
				}
			}
		}

		rt.Logger.InfoContext(
			ctx, "workflow finalized",
			"completed_at", completed,
			"fallbacks", fallbacks,
		)

		return s.Set(KeyCompletedAt, completed), nil
	})
}

func recordsFrom(s state.State) ([]taxonomy.Record, error) {
	val, ok := s.Get(KeyRecords)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyRecords)
	}
	records, ok := val.([]taxonomy.Record)
	if !ok {
		return nil, fmt.Errorf("%s is not []taxonomy.Record", KeyRecords)
	}
	return records, nil
}
