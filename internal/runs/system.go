package runs

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/survey/internal/distribution"
	"github.com/JaimeStill/survey/pkg/pagination"
	"github.com/JaimeStill/survey/pkg/storage"
)

// System defines the public contract for run domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Run], error)

	Find(ctx context.Context, id uuid.UUID) (*Run, error)
	Fields(ctx context.Context, id uuid.UUID) ([]Field, error)
	Execute(ctx context.Context, cmd ExecuteCommand) (*Execution, error)

	// Corpus returns the archived clean corpus. The caller must close the
	// blob body.
	Corpus(ctx context.Context, id uuid.UUID) (*storage.Blob, error)

	Distribution(
		ctx context.Context,
		id uuid.UUID,
		field string,
		strategy distribution.Strategy,
	) (*Distribution, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
