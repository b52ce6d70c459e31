package loam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/searchexpr/internal/dto"
	"github.com/aretw0/searchexpr/pkg/domain"
)

// Loader adapts a Loam repository to the ports.ViewLoader interface.
// Each document holds one view: the frontmatter (or the JSON/YAML body)
// carries the view metadata, the file name is the fallback view ID.
type Loader struct {
	Repo *loam.TypedRepository[dto.ViewMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[dto.ViewMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository rooted at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve views directory: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("views directory %s: %w", absPath, err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init loam repository: %w", err)
	}
	return New(loam.NewTypedRepository[dto.ViewMetadata](repo)), nil
}

// GetView retrieves a view document and returns it as normalized JSON.
// The ID may be given with or without its file extension.
func (l *Loader) GetView(id string) ([]byte, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("loam get failed for %s: %w", id, err), domain.ErrViewNotFound)
	}

	meta := doc.Data
	rawID := meta.ID
	if rawID == "" {
		rawID = doc.ID
	}
	meta.ID = trimExtension(rawID)
	if meta.Root == nil {
		return nil, fmt.Errorf("view %s has no root component", meta.ID)
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal view data: %w", err)
	}
	return data, nil
}

// ListViews returns the normalized IDs of all view documents, sorted.
// Two documents resolving to the same ID are an error.
func (l *Loader) ListViews() ([]string, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
