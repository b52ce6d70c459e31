package domain

// Hint tunes how a search expression is resolved.
type Hint string

const (
	// HintIgnoreNoResult turns a failed lookup into an empty result instead of an error.
	HintIgnoreNoResult Hint = "ignore_no_result"
	// HintResolveSingleComponent stops the walk at the first match.
	HintResolveSingleComponent Hint = "resolve_single_component"
	// HintSkipUnrendered excludes components with Rendered=false from id lookups.
	HintSkipUnrendered Hint = "skip_unrendered"
)

// Callback receives every component an expression resolves to.
type Callback func(ctx *SearchContext, target *Component)

// SearchContext carries the per-resolution state: the view, the anchor
// component and the active hints.
type SearchContext struct {
	View   *View
	Source *Component
	Hints  map[Hint]bool
}

// NewSearchContext creates a context anchored at source. A nil source
// anchors at the view root.
func NewSearchContext(view *View, source *Component, hints ...Hint) *SearchContext {
	if source == nil && view != nil {
		source = view.Root
	}
	ctx := &SearchContext{
		View:   view,
		Source: source,
		Hints:  make(map[Hint]bool, len(hints)),
	}
	for _, h := range hints {
		ctx.Hints[h] = true
	}
	return ctx
}

// Has reports whether hint is active.
func (c *SearchContext) Has(hint Hint) bool {
	return c.Hints[hint]
}

// WithHints returns a copy of the context with the extra hints enabled.
func (c *SearchContext) WithHints(hints ...Hint) *SearchContext {
	next := &SearchContext{
		View:   c.View,
		Source: c.Source,
		Hints:  make(map[Hint]bool, len(c.Hints)+len(hints)),
	}
	for h, on := range c.Hints {
		next.Hints[h] = on
	}
	for _, h := range hints {
		next.Hints[h] = true
	}
	return next
}

// Separator returns the naming-container separator of the view.
func (c *SearchContext) Separator() rune {
	if c.View == nil || c.View.Separator == 0 {
		return DefaultSeparator
	}
	return c.View.Separator
}

// Root returns the view root, falling back to the root of the source tree.
func (c *SearchContext) Root() *Component {
	if c.View != nil && c.View.Root != nil {
		return c.View.Root
	}
	if c.Source != nil {
		return c.Source.Root()
	}
	return nil
}

// ParseHint maps the wire name of a hint to its constant.
func ParseHint(name string) (Hint, bool) {
	switch Hint(name) {
	case HintIgnoreNoResult, HintResolveSingleComponent, HintSkipUnrendered:
		return Hint(name), true
	}
	return "", false
}
