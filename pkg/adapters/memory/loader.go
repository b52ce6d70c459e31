package memory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// Loader implements ports.ViewLoader using an in-memory map.
type Loader struct {
	views map[string][]byte
}

// NewLoader creates a new Loader with the provided raw documents (JSON or YAML).
func NewLoader(data map[string]string) *Loader {
	views := make(map[string][]byte)
	for k, v := range data {
		views[k] = []byte(v)
	}
	return &Loader{
		views: views,
	}
}

// NewFromViews creates a new Loader from domain objects.
// This handles serialization automatically, improving DX for tests.
func NewFromViews(views ...*domain.View) (*Loader, error) {
	data := make(map[string][]byte)
	for _, v := range views {
		if v.ID == "" {
			return nil, fmt.Errorf("view missing ID")
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal view %s: %w", v.ID, err)
		}
		data[v.ID] = bytes
	}
	return &Loader{views: data}, nil
}

// GetView retrieves the raw definition of a view by ID.
func (l *Loader) GetView(id string) ([]byte, error) {
	content, ok := l.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrViewNotFound, id)
	}
	return content, nil
}

// ListViews returns all available view IDs.
func (l *Loader) ListViews() ([]string, error) {
	keys := make([]string, 0, len(l.views))
	for k := range l.views {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
