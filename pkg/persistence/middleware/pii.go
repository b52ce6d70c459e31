package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
)

// Mask replaces redacted attribute values.
const Mask = "***"

type piiMiddleware struct {
	next     ports.ViewStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the values of component
// attributes whose key matches one of the patterns. Views captured from live
// pages often carry input values; only the masked copy reaches the store.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ViewStore) ports.ViewStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, view *domain.View) error {
	if len(m.patterns) == 0 || view.Root == nil {
		return m.next.Save(ctx, view)
	}

	// The caller keeps using its tree, so mask a copy.
	cloned := view.Clone()
	cloned.Root.Walk(func(c *domain.Component) bool {
		for k := range c.Attributes {
			if m.sensitive(k) {
				c.Attributes[k] = Mask
			}
		}
		return true
	})
	return m.next.Save(ctx, cloned)
}

func (m *piiMiddleware) sensitive(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

func (m *piiMiddleware) Load(ctx context.Context, viewID string) (*domain.View, error) {
	return m.next.Load(ctx, viewID)
}

func (m *piiMiddleware) Delete(ctx context.Context, viewID string) error {
	return m.next.Delete(ctx, viewID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
