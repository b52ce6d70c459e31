package dsl

import (
	"fmt"

	"github.com/aretw0/searchexpr/pkg/adapters/memory"
	"github.com/aretw0/searchexpr/pkg/domain"
)

// Builder manages the construction of a view tree.
// Container methods (Form, Composite, Panel, Container) open a scope that
// End closes; leaf methods add to the innermost open scope.
type Builder struct {
	viewID string
	root   *domain.Component
	stack  []*domain.Component
	last   *domain.Component
}

// New creates a builder for a view whose root has the id "root".
func New(viewID string) *Builder {
	root := &domain.Component{ID: "root", Family: domain.FamilyRoot}
	return &Builder{
		viewID: viewID,
		root:   root,
		stack:  []*domain.Component{root},
		last:   root,
	}
}

func (b *Builder) current() *domain.Component {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) add(id, family string, open bool) *Builder {
	c := b.current().AddChild(&domain.Component{ID: id, Family: family})
	b.last = c
	if open {
		b.stack = append(b.stack, c)
	}
	return b
}

// Form opens a form scope.
func (b *Builder) Form(id string) *Builder {
	return b.add(id, domain.FamilyForm, true)
}

// Composite opens a composite component scope.
func (b *Builder) Composite(id string) *Builder {
	return b.add(id, domain.FamilyComposite, true)
}

// Panel opens a grouping scope that is not a naming container.
func (b *Builder) Panel(id string) *Builder {
	return b.add(id, domain.FamilyPanel, true)
}

// Container opens a generic naming container scope (tables, subviews...).
func (b *Builder) Container(id string) *Builder {
	b.add(id, domain.FamilyPanel, true)
	b.last.NamingContainer = true
	return b
}

// Input adds an input component.
func (b *Builder) Input(id string) *Builder {
	return b.add(id, domain.FamilyInput, false)
}

// Output adds an output component.
func (b *Builder) Output(id string) *Builder {
	return b.add(id, domain.FamilyOutput, false)
}

// Command adds a button or link.
func (b *Builder) Command(id string) *Builder {
	return b.add(id, domain.FamilyCommand, false)
}

// Component adds a leaf of an arbitrary family.
func (b *Builder) Component(id, family string) *Builder {
	return b.add(id, family, false)
}

// Attr sets an attribute on the last added component.
func (b *Builder) Attr(key, value string) *Builder {
	if b.last.Attributes == nil {
		b.last.Attributes = make(map[string]string)
	}
	b.last.Attributes[key] = value
	return b
}

// Hidden marks the last added component as not rendered.
func (b *Builder) Hidden() *Builder {
	rendered := false
	b.last.Rendered = &rendered
	return b
}

// End closes the innermost open scope. Extra calls are ignored at the root.
func (b *Builder) End() *Builder {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b
}

// Build returns the linked view.
func (b *Builder) Build() *domain.View {
	return domain.NewView(b.viewID, b.root)
}

// Loader compiles the view into a memory.Loader.
func (b *Builder) Loader() (*memory.Loader, error) {
	loader, err := memory.NewFromViews(b.Build())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
