package taxonomy

import "errors"

var (
	// ErrOracleUnavailable wraps a failed oracle call.
	ErrOracleUnavailable = errors.New("classification oracle unavailable")
	// ErrMalformedResponse indicates the oracle answered with something other
	// than a JSON object of string labels.
	ErrMalformedResponse = errors.New("malformed oracle response")
	// ErrShapeViolation indicates a field value that is neither a scalar nor a
	// flat list of scalars.
	ErrShapeViolation = errors.New("unsupported field value shape")
	// ErrInvalidBound indicates a non-positive category bound.
	ErrInvalidBound = errors.New("max categories must be positive")
)
