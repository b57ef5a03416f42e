package runs

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/survey/internal/distribution"
	"github.com/JaimeStill/survey/pkg/storage"
)

// Domain errors for run operations.
var (
	ErrNotFound   = errors.New("run not found")
	ErrDuplicate  = errors.New("run already exists")
	ErrInvalidRun = errors.New("invalid run")
	ErrTooLarge   = errors.New("request exceeds maximum upload size")
)

// MapHTTPStatus maps run domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidRun), errors.Is(err, distribution.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, distribution.ErrUndetermined):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
