package poker

import "errors"

var (
	// ErrInvalidInput reports malformed cards, wrong card counts or duplicates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingResource reports reference data that is absent, unreadable or corrupt.
	ErrMissingResource = errors.New("missing resource")
)
