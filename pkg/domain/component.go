package domain

import "strings"

// Family constants classify components that keywords treat specially.
const (
	// FamilyRoot marks the view root. It never contributes to client ids.
	FamilyRoot = "root"
	// FamilyForm marks a form. Forms are always naming containers.
	FamilyForm = "form"
	// FamilyComposite marks a composite component. Composites are always naming containers.
	FamilyComposite = "composite"
	// FamilyPanel is a plain grouping component.
	FamilyPanel = "panel"
	// FamilyInput is an editable value holder.
	FamilyInput = "input"
	// FamilyOutput is a read-only value holder.
	FamilyOutput = "output"
	// FamilyCommand is a button or link.
	FamilyCommand = "command"
)

// Component represents an addressable node in a view tree.
// The resolver treats components as read-only.
type Component struct {
	ID     string `json:"id" yaml:"id"`
	Family string `json:"family,omitempty" yaml:"family,omitempty"`

	// NamingContainer marks an id namespace boundary.
	// Forms and composites are naming containers regardless of this flag.
	NamingContainer bool `json:"naming_container,omitempty" yaml:"naming_container,omitempty"`

	// Rendered defaults to true when nil.
	Rendered *bool `json:"rendered,omitempty" yaml:"rendered,omitempty"`

	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children   []*Component      `json:"children,omitempty" yaml:"children,omitempty"`

	parent *Component
}

// Parent returns the enclosing component, or nil for the root.
func (c *Component) Parent() *Component {
	return c.parent
}

// IsNamingContainer reports whether the component opens a new id namespace.
func (c *Component) IsNamingContainer() bool {
	return c.NamingContainer || c.Family == FamilyForm || c.Family == FamilyComposite
}

// IsRendered reports whether the component takes part in rendering.
func (c *Component) IsRendered() bool {
	return c.Rendered == nil || *c.Rendered
}

// IsRoot reports whether the component has no parent.
func (c *Component) IsRoot() bool {
	return c.parent == nil
}

// AddChild appends child and links it to c.
func (c *Component) AddChild(child *Component) *Component {
	child.parent = c
	c.Children = append(c.Children, child)
	return child
}

// Index returns the position of c among its siblings, or -1 for the root.
func (c *Component) Index() int {
	if c.parent == nil {
		return -1
	}
	for i, sibling := range c.parent.Children {
		if sibling == c {
			return i
		}
	}
	return -1
}

// Root walks up to the top of the tree.
func (c *Component) Root() *Component {
	cur := c
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// ClosestAncestor returns the nearest ancestor (excluding c) matching match.
func (c *Component) ClosestAncestor(match func(*Component) bool) *Component {
	for cur := c.parent; cur != nil; cur = cur.parent {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// NamingContainerOf returns the nearest naming container enclosing c, or nil.
func (c *Component) NamingContainerOf() *Component {
	return c.ClosestAncestor((*Component).IsNamingContainer)
}

// ClientID builds the composite identifier of c: the ids of all enclosing
// naming containers followed by the component's own id, joined by sep.
// The root contributes no segment.
func (c *Component) ClientID(sep rune) string {
	if c.parent == nil {
		return c.ID
	}
	segments := []string{c.ID}
	for nc := c.NamingContainerOf(); nc != nil && nc.parent != nil; nc = nc.NamingContainerOf() {
		segments = append(segments, nc.ID)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, string(sep))
}

// Walk visits c and its descendants depth-first, pre-order.
// Returning false from fn prunes the subtree below the visited component.
func (c *Component) Walk(fn func(*Component) bool) {
	if !fn(c) {
		return
	}
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

// link sets parent pointers for the whole subtree.
func (c *Component) link() {
	for _, child := range c.Children {
		child.parent = c
		child.link()
	}
}

// Clone deep-copies the subtree rooted at c. The copy is detached from c's parent.
func (c *Component) Clone() *Component {
	cp := &Component{
		ID:              c.ID,
		Family:          c.Family,
		NamingContainer: c.NamingContainer,
	}
	if c.Rendered != nil {
		rendered := *c.Rendered
		cp.Rendered = &rendered
	}
	if c.Attributes != nil {
		cp.Attributes = make(map[string]string, len(c.Attributes))
		for k, v := range c.Attributes {
			cp.Attributes[k] = v
		}
	}
	for _, child := range c.Children {
		cp.AddChild(child.Clone())
	}
	return cp
}
