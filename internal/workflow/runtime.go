package workflow

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/survey/internal/taxonomy"
	"github.com/JaimeStill/survey/pkg/storage"
)

// Runtime bundles the dependencies that workflow nodes require. A nil
// Storage skips the archive node. Now defaults to time.Now.
type Runtime struct {
	Mapper  *taxonomy.Mapper
	Storage storage.System
	Logger  *slog.Logger
	Options taxonomy.Options
	Now     func() time.Time
}

func (rt *Runtime) now() time.Time {
	if rt.Now != nil {
		return rt.Now()
	}
	return time.Now()
}
