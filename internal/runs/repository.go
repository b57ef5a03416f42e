package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/survey/internal/corpus"
	"github.com/JaimeStill/survey/internal/distribution"
	"github.com/JaimeStill/survey/internal/taxonomy"
	"github.com/JaimeStill/survey/internal/workflow"
	"github.com/JaimeStill/survey/pkg/pagination"
	"github.com/JaimeStill/survey/pkg/query"
	"github.com/JaimeStill/survey/pkg/repository"
	"github.com/JaimeStill/survey/pkg/storage"
)

type repo struct {
	db            *sql.DB
	storage       storage.System
	runtime       *workflow.Runtime
	logger        *slog.Logger
	pagination    pagination.Config
	maxCategories int
}

// New creates a run repository implementing the System interface. Runs
// that name no category bound use maxCategories.
func New(
	db *sql.DB,
	runtime *workflow.Runtime,
	logger *slog.Logger,
	pagination pagination.Config,
	maxCategories int,
) System {
	return &repo{
		db:            db,
		storage:       runtime.Storage,
		runtime:       runtime,
		logger:        logger.With("system", "runs"),
		pagination:    pagination,
		maxCategories: maxCategories,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Run], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Topic", "StorageKey")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderBy(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	runs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	result := pagination.NewPageResult(runs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Run, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	run, err := repository.QueryOne(ctx, r.db, q, args, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &run, nil
}

func (r *repo) Fields(ctx context.Context, id uuid.UUID) ([]Field, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	q := `SELECT ` + fieldColumns + ` FROM run_fields WHERE run_id = $1 ORDER BY position`
	fields, err := repository.QueryMany(ctx, r.db, q, []any{id}, scanField)
	if err != nil {
		return nil, fmt.Errorf("query run fields: %w", err)
	}
	return fields, nil
}

func (r *repo) Execute(ctx context.Context, cmd ExecuteCommand) (*Execution, error) {
	if err := r.validate(&cmd); err != nil {
		return nil, err
	}

	id := uuid.New()
	res, err := workflow.Execute(ctx, r.runtime, workflow.Input{
		RunID:         id,
		Records:       cmd.Records,
		Fields:        cmd.Fields,
		MaxCategories: cmd.MaxCategories,
	})
	if err != nil {
		return nil, fmt.Errorf("execute run: %w", err)
	}

	exec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Execution, error) {
		return insertRun(ctx, tx, cmd, res)
	})
	if err != nil {
		if res.StorageKey != "" {
			if delErr := r.storage.Delete(ctx, res.StorageKey); delErr != nil {
				r.logger.Warn("compensating blob delete failed", "key", res.StorageKey, "error", delErr)
			}
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"run executed",
		"id", id,
		"records", exec.Run.RecordCount,
		"fields", len(exec.Fields),
		"fallbacks", exec.Run.FallbackCount,
	)
	return exec, nil
}

// validate fills defaults and rejects runs that cannot succeed, including
// corpora whose named fields hold nested values.
func (r *repo) validate(cmd *ExecuteCommand) error {
	if len(cmd.Fields) == 0 {
		return fmt.Errorf("%w: fields required", ErrInvalidRun)
	}
	for _, f := range cmd.Fields {
		if f == "" {
			return fmt.Errorf("%w: field names must not be empty", ErrInvalidRun)
		}
	}

	if cmd.MaxCategories == 0 {
		cmd.MaxCategories = r.maxCategories
	}
	if cmd.MaxCategories < 1 {
		return fmt.Errorf("%w: max_categories must be positive", ErrInvalidRun)
	}

	if cmd.Records == nil {
		cmd.Records = []taxonomy.Record{}
	}
	for i, rec := range cmd.Records {
		if rec == nil {
			return fmt.Errorf("%w: record %d is null", ErrInvalidRun, i)
		}
	}
	for _, f := range cmd.Fields {
		if _, err := taxonomy.DistinctValues(cmd.Records, f); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRun, err)
		}
	}
	return nil
}

func insertRun(ctx context.Context, tx *sql.Tx, cmd ExecuteCommand, res *workflow.Result) (*Execution, error) {
	fallbacks := 0
	for _, f := range res.Fields {
		if f.Fallback {
			fallbacks++
		}
	}

	q := `
		INSERT INTO runs(id, topic, fields, max_categories, record_count, fallback_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + runColumns

	run, err := repository.QueryOne(ctx, tx, q, []any{
		res.RunID,
		cmd.Topic,
		cmd.Fields,
		cmd.MaxCategories,
		len(res.Records),
		fallbacks,
		res.StorageKey,
	}, scanRun)
	if err != nil {
		return nil, err
	}

	fq := `
		INSERT INTO run_fields(` + fieldColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + fieldColumns

	fields := make([]Field, 0, len(res.Fields))
	for i, fr := range res.Fields {
		mapping, err := json.Marshal(fr.Mapping)
		if err != nil {
			return nil, fmt.Errorf("encode mapping for %s: %w", fr.Field, err)
		}

		reason := sql.NullString{String: fr.Reason, Valid: fr.Reason != ""}
		f, err := repository.QueryOne(ctx, tx, fq, []any{
			res.RunID,
			i,
			fr.Field,
			fr.DerivedField,
			string(mapping),
			fr.ValueCount,
			fr.LabelCount,
			fr.Fallback,
			reason,
		}, scanField)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return &Execution{Run: run, Fields: fields}, nil
}

func (r *repo) Corpus(ctx context.Context, id uuid.UUID) (*storage.Blob, error) {
	run, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.storage.Download(ctx, run.StorageKey)
}

func (r *repo) Distribution(
	ctx context.Context,
	id uuid.UUID,
	field string,
	strategy distribution.Strategy,
) (*Distribution, error) {
	if field == "" {
		return nil, fmt.Errorf("%w: field required", ErrInvalidRun)
	}

	blob, err := r.Corpus(ctx, id)
	if err != nil {
		return nil, err
	}
	defer blob.Body.Close()

	records, err := corpus.Decode(blob.Body)
	if err != nil {
		return nil, fmt.Errorf("decode archived corpus: %w", err)
	}

	counts, err := distribution.Count(records, field, strategy)
	if err != nil {
		if errors.Is(err, taxonomy.ErrShapeViolation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRun, err)
		}
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &Distribution{
		Field:    field,
		Strategy: strategy,
		Total:    total,
		Entries:  distribution.Sorted(counts),
	}, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	run, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM runs WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, run.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", run.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("run deleted", "id", id)
	return nil
}
