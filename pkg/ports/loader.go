package ports

import "context"

// ViewLoader defines how view documents are retrieved.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type ViewLoader interface {
	// GetView retrieves the raw definition of a view by ID.
	// It returns the raw bytes (which the compiler will parse) or an error.
	GetView(id string) ([]byte, error)

	// ListViews returns the IDs of all views available to the loader.
	ListViews() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that is signaled with the changed view ID.
	Watch(ctx context.Context) (<-chan string, error)
}
