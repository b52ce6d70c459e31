package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// Store implements ports.ViewStore using the local filesystem.
// It stores views as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".searchexpr/views".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".searchexpr", "views")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(viewID string) (string, error) {
	if viewID == "" {
		return "", fmt.Errorf("viewID cannot be empty")
	}
	if strings.ContainsAny(viewID, `/\`) || viewID == "." || viewID == ".." {
		return "", fmt.Errorf("invalid viewID %q", viewID)
	}
	return filepath.Join(s.BasePath, viewID+".json"), nil
}

// Save persists the view to a JSON file atomically.
// It writes to a temporary file first, syncs it and then renames it to the destination.
func (s *Store) Save(ctx context.Context, view *domain.View) error {
	destPath, err := s.path(view.ID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure view directory: %w", err)
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+view.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing file on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing view file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to view file: %w", err)
	}
	return nil
}

// Load reads the view back and links its tree.
func (s *Store) Load(ctx context.Context, viewID string) (*domain.View, error) {
	filePath, err := s.path(viewID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrViewNotFound
		}
		return nil, fmt.Errorf("failed to read view file: %w", err)
	}

	var view domain.View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view: %w", err)
	}
	view.Link()
	return &view, nil
}

// Delete removes the view file. Deleting a missing view is not an error.
func (s *Store) Delete(ctx context.Context, viewID string) error {
	filePath, err := s.path(viewID)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete view file: %w", err)
	}
	return nil
}

// List returns all stored view IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list views: %w", err)
	}

	views := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		views = append(views, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(views)
	return views, nil
}
