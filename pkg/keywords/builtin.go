package keywords

import (
	"fmt"
	"strconv"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
)

// Keyword names understood by the built-in resolvers.
const (
	This            = "this"
	Parent          = "parent"
	Child           = "child"
	Composite       = "composite"
	Form            = "form"
	Next            = "next"
	Previous        = "previous"
	NamingContainer = "namingcontainer"
	Root            = "root"
	ID              = "id"
	None            = "none"
	All             = "all"
)

// Defaults returns the built-in resolvers in their lookup order.
func Defaults() []ports.KeywordResolver {
	return []ports.KeywordResolver{
		&Keyword{Name: This, Description: "The current component.", Fn: resolveThis},
		&Keyword{Name: Parent, Description: "The parent of the current component.", Fn: resolveParent},
		&Keyword{Name: Child, Argument: true, Description: "The n-th child (0-based) of the current component.", Check: checkIndex, Fn: resolveChild},
		&Keyword{Name: Composite, Description: "The closest composite component ancestor.", Fn: resolveComposite},
		&Keyword{Name: Form, Description: "The closest form, starting with the current component.", Fn: resolveForm},
		&Keyword{Name: Next, Description: "The next sibling of the current component.", Fn: sibling(1)},
		&Keyword{Name: NamingContainer, Description: "The closest naming container ancestor.", Fn: resolveNamingContainer},
		&Keyword{Name: None, Passthrough: true, Leaf: true, Description: "No component."},
		&Keyword{Name: Previous, Description: "The previous sibling of the current component.", Fn: sibling(-1)},
		&Keyword{Name: Root, Description: "The view root.", Fn: resolveRoot},
		&Keyword{Name: ID, Argument: true, Description: "Every component below the current one with the given id.", Fn: resolveID},
		&Keyword{Name: All, Passthrough: true, Leaf: true, Description: "The whole view.", Fn: resolveRoot},
	}
}

func resolveThis(_ *domain.SearchContext, current *domain.Component, _ string) ([]*domain.Component, error) {
	return one(current), nil
}

func resolveParent(_ *domain.SearchContext, current *domain.Component, _ string) ([]*domain.Component, error) {
	return one(current.Parent()), nil
}

func checkIndex(arg string) error {
	if n, err := strconv.Atoi(arg); err != nil || n < 0 {
		return fmt.Errorf("keyword @child expects a non-negative index, got %q", arg)
	}
	return nil
}

func resolveChild(_ *domain.SearchContext, current *domain.Component, arg string) ([]*domain.Component, error) {
	n, _ := strconv.Atoi(arg)
	if n >= len(current.Children) {
		return nil, nil
	}
	return one(current.Children[n]), nil
}

func resolveComposite(_ *domain.SearchContext, current *domain.Component, _ string) ([]*domain.Component, error) {
	return one(current.ClosestAncestor(func(c *domain.Component) bool {
		return c.Family == domain.FamilyComposite
	})), nil
}

func resolveForm(_ *domain.SearchContext, current *domain.Component, _ string) ([]*domain.Component, error) {
	if current.Family == domain.FamilyForm {
		return one(current), nil
	}
	return one(current.ClosestAncestor(func(c *domain.Component) bool {
		return c.Family == domain.FamilyForm
	})), nil
}

func resolveNamingContainer(_ *domain.SearchContext, current *domain.Component, _ string) ([]*domain.Component, error) {
	return one(current.NamingContainerOf()), nil
}

func resolveRoot(ctx *domain.SearchContext, current *domain.Component, _ string) ([]*domain.Component, error) {
	if root := ctx.Root(); root != nil {
		return one(root), nil
	}
	return one(current.Root()), nil
}

func sibling(offset int) Func {
	return func(_ *domain.SearchContext, current *domain.Component, _ string) ([]*domain.Component, error) {
		parent := current.Parent()
		if parent == nil {
			return nil, nil
		}
		i := current.Index() + offset
		if i < 0 || i >= len(parent.Children) {
			return nil, nil
		}
		return one(parent.Children[i]), nil
	}
}

// resolveID fans out to every match in the subtree of current, crossing
// naming-container boundaries. The fan-out is always complete: a later
// command may only resolve below one of the matches.
func resolveID(ctx *domain.SearchContext, current *domain.Component, arg string) ([]*domain.Component, error) {
	var found []*domain.Component
	skip := ctx.Has(domain.HintSkipUnrendered)
	current.Walk(func(c *domain.Component) bool {
		if skip && !c.IsRendered() {
			return false
		}
		if c.ID == arg {
			found = append(found, c)
		}
		return true
	})
	return found, nil
}
