package ports

import (
	"context"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// ViewStore defines the interface for persisting compiled views, so clients
// can upload a view once and resolve many expressions against it.
type ViewStore interface {
	// Save persists the view under its ID.
	Save(ctx context.Context, view *domain.View) error

	// Load retrieves a view with parent pointers linked.
	// Returns domain.ErrViewNotFound if the view does not exist.
	Load(ctx context.Context, viewID string) (*domain.View, error)

	// Delete removes the view.
	Delete(ctx context.Context, viewID string) error

	// List returns the IDs of the stored views.
	List(ctx context.Context) ([]string, error)
}
