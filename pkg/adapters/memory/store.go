package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// Store implements ports.ViewStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.View
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.View),
	}
}

// Save persists a copy of the view.
func (s *Store) Save(ctx context.Context, view *domain.View) error {
	copied := view.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[view.ID] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored tree.
func (s *Store) Load(ctx context.Context, viewID string) (*domain.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, ok := s.data[viewID]
	if !ok {
		return nil, domain.ErrViewNotFound
	}
	return view.Clone(), nil
}

// Delete removes the view.
func (s *Store) Delete(ctx context.Context, viewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, viewID)
	return nil
}

// List returns the stored view IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]string, 0, len(s.data))
	for id := range s.data {
		views = append(views, id)
	}
	sort.Strings(views)
	return views, nil
}
