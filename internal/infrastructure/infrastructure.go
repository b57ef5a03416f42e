// Package infrastructure assembles the systems a categorization run depends
// on: lifecycle coordination, logging, the run database, the corpus archive,
// and the category oracle.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/oracle"
	"github.com/JaimeStill/survey/internal/taxonomy"
	"github.com/JaimeStill/survey/pkg/database"
	"github.com/JaimeStill/survey/pkg/lifecycle"
	"github.com/JaimeStill/survey/pkg/storage"
)

type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Oracle    taxonomy.Oracle
}

// New builds every system from cfg. Nothing connects until Start.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	o, err := oracle.New(&cfg.Oracle, logger)
	if err != nil {
		return nil, fmt.Errorf("oracle init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Oracle:    o,
	}, nil
}

// Start registers the database and archive hooks. Readiness waits on the
// database; the oracle is called lazily per run and is not tracked.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	i.Lifecycle.Track(i.Database)
	return nil
}

// Scoped returns a copy whose logger carries attrs. Systems are shared.
func (i *Infrastructure) Scoped(attrs ...any) *Infrastructure {
	scoped := *i
	scoped.Logger = i.Logger.With(attrs...)
	return &scoped
}
