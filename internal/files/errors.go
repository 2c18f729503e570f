package files

import "errors"

var (
	// ErrNotFound marks an unknown file identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a request that fails basic validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage marks a failure of the durable store itself.
	ErrStorage = errors.New("storage failure")
)
