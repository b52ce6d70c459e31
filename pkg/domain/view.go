package domain

// DefaultSeparator joins the local ids of naming containers into client ids.
const DefaultSeparator = ':'

// View is a request-scoped component tree.
type View struct {
	ID        string     `json:"id" yaml:"id"`
	Separator rune       `json:"separator,omitempty" yaml:"separator,omitempty"`
	Root      *Component `json:"root" yaml:"root"`
}

// NewView creates a view around root and links parent pointers.
func NewView(id string, root *Component) *View {
	v := &View{ID: id, Separator: DefaultSeparator, Root: root}
	v.Link()
	return v
}

// Link (re)establishes parent pointers after the tree was built or decoded.
func (v *View) Link() {
	if v.Separator == 0 {
		v.Separator = DefaultSeparator
	}
	if v.Root == nil {
		return
	}
	v.Root.parent = nil
	if v.Root.Family == "" {
		v.Root.Family = FamilyRoot
	}
	v.Root.link()
}

// FindByClientID returns the component whose client id equals clientID.
func (v *View) FindByClientID(clientID string) *Component {
	if v.Root == nil {
		return nil
	}
	var found *Component
	v.Root.Walk(func(c *Component) bool {
		if found != nil {
			return false
		}
		if c.ClientID(v.Separator) == clientID {
			found = c
			return false
		}
		return true
	})
	return found
}

// Components lists every component of the view in document order.
func (v *View) Components() []*Component {
	var all []*Component
	if v.Root == nil {
		return all
	}
	v.Root.Walk(func(c *Component) bool {
		all = append(all, c)
		return true
	})
	return all
}

// Clone deep-copies the view so stores can hand out isolated trees.
func (v *View) Clone() *View {
	cp := &View{ID: v.ID, Separator: v.Separator}
	if v.Root != nil {
		cp.Root = v.Root.Clone()
	}
	cp.Link()
	return cp
}
