package files

import "context"

// Repo defines persistence operations for file records. All operations are
// atomic at single-record granularity.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	// Delete removes the record and returns it so the caller can clean up
	// the backing blob. A missing id yields ErrNotFound.
	Delete(ctx context.Context, id string) (Record, error)
}
