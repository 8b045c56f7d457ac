package driven

import (
	"context"

	"github.com/custodia-labs/lore/internal/core/domain"
)

// ContentIndex provides query access to content items.
// Backed by an in-memory catalog or SQLite.
type ContentIndex interface {
	// Query returns one page of items matching spec.
	// Cancelling ctx must make a pending call fail with an error
	// matching context.Canceled or domain.ErrCancelled.
	Query(ctx context.Context, spec domain.QuerySpec) (domain.QueryResult, error)

	// Get retrieves a single item by ID.
	// Returns domain.ErrNotFound if no such item exists.
	Get(ctx context.Context, id string) (*domain.ContentRef, error)
}
