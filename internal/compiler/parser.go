package compiler

import (
	"fmt"

	"github.com/aretw0/searchexpr/internal/dto"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw view documents into a View.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a JSON or YAML document into a linked View.
// YAML being a superset of JSON, both go through the YAML decoder.
func (p *Parser) Parse(data []byte) (*domain.View, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse view: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse view: empty document")
	}
	return p.Decode(raw)
}

// Decode builds a View from already-unmarshalled metadata (e.g. frontmatter).
func (p *Parser) Decode(raw map[string]any) (*domain.View, error) {
	var meta dto.ViewMetadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &meta,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode view: %w", err)
	}
	return p.Build(meta)
}

// Build converts decoded metadata into a linked View.
func (p *Parser) Build(meta dto.ViewMetadata) (*domain.View, error) {
	if meta.Root == nil {
		return nil, fmt.Errorf("view %q has no root component", meta.ID)
	}
	sep, err := separator(meta.Separator)
	if err != nil {
		return nil, fmt.Errorf("view %q: %w", meta.ID, err)
	}

	view := &domain.View{
		ID:        meta.ID,
		Separator: sep,
		Root:      buildComponent(*meta.Root),
	}
	view.Link()
	return view, nil
}

func buildComponent(meta dto.ComponentMetadata) *domain.Component {
	family := meta.Family
	if family == "" {
		family = meta.Type
	}
	c := &domain.Component{
		ID:              meta.ID,
		Family:          family,
		NamingContainer: meta.NamingContainer,
		Rendered:        meta.Rendered,
		Attributes:      meta.Attributes,
	}
	for _, child := range meta.Children {
		c.AddChild(buildComponent(child))
	}
	return c
}

func separator(v any) (rune, error) {
	switch s := v.(type) {
	case nil:
		return domain.DefaultSeparator, nil
	case string:
		r := []rune(s)
		if len(r) != 1 {
			return 0, fmt.Errorf("separator must be a single character, got %q", s)
		}
		return r[0], nil
	case int:
		return rune(s), nil
	case int64:
		return rune(s), nil
	case uint64:
		return rune(s), nil
	case float64:
		return rune(s), nil
	}
	return 0, fmt.Errorf("unsupported separator %v (%T)", v, v)
}
