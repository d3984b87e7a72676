package ragpipe

import "errors"

var (
	// ErrMissingAPIKey is returned at construction time when an embedder
	// requires an API key and none was provided.
	ErrMissingAPIKey = errors.New("ragpipe: missing API key")

	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("ragpipe: item not found")

	// ErrInvalidDimension is returned when a vector does not match the
	// store's configured dimension.
	ErrInvalidDimension = errors.New("ragpipe: invalid vector dimension")
)
