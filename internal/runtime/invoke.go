package runtime

import (
	"errors"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// errNoAnchor is returned when neither the context nor the caller supplies a start component.
var errNoAnchor = errors.New("search context has no source component")

// InvokeOnComponent resolves expression starting at the context source and
// invokes callback for every match.
func (e *Engine) InvokeOnComponent(ctx *domain.SearchContext, expression string, callback domain.Callback) error {
	return e.InvokeOnComponentFrom(ctx, ctx.Source, expression, callback)
}

// InvokeOnComponentFrom is the core walk: the first command is resolved
// relative to previous, every further command relative to each result of
// the command before it. A command yielding several components threads each
// of them through the remaining commands.
//
// It never reports "not found"; callers decide from the callback count.
func (e *Engine) InvokeOnComponentFrom(ctx *domain.SearchContext, previous *domain.Component, expression string, callback domain.Callback) error {
	_, err := e.invoke(ctx, previous, expression, callback)
	return err
}

// invoke parses and walks expression, returning the parsed form so callers
// can report which command came up empty.
func (e *Engine) invoke(ctx *domain.SearchContext, previous *domain.Component, expression string, callback domain.Callback) (*parsed, error) {
	p, err := e.parse(ctx, expression)
	if err != nil {
		return nil, err
	}

	anchor := previous
	if p.absolute || anchor == nil {
		anchor = ctx.Root()
	}
	if anchor == nil {
		return p, errNoAnchor
	}

	_, err = e.walk(ctx, p, anchor, 0, callback)
	return p, err
}

// walk resolves p.commands[i:] from current. It returns true once the
// single-component hint is satisfied so callers stop fanning out.
func (e *Engine) walk(ctx *domain.SearchContext, p *parsed, current *domain.Component, i int, callback domain.Callback) (bool, error) {
	cmd := p.commands[i]

	var matches []*domain.Component
	if cmd.isKeyword() {
		found, err := cmd.resolver.Resolve(ctx, current, cmd.keyword)
		if err != nil {
			return false, invalid(p.expression, "%s", err.Error())
		}
		for _, c := range found {
			if c != nil {
				matches = append(matches, c)
			}
		}
	} else {
		// An absolute expression starts at the root, so its first id is
		// looked up exactly as a relative one from the root would be.
		matches = e.findByID(ctx, current, cmd.raw, i == 0)
	}
	if len(matches) == 0 && p.missed == "" {
		p.missed = cmd.raw
	}

	e.logger.Debug("search command resolved",
		"expression", p.expression,
		"command", cmd.raw,
		"from", current.ID,
		"matches", len(matches),
	)

	last := i == len(p.commands)-1
	for _, m := range matches {
		if last {
			if callback != nil {
				callback(ctx, m)
			}
			if ctx.Has(domain.HintResolveSingleComponent) {
				return true, nil
			}
			continue
		}
		done, err := e.walk(ctx, p, m, i+1, callback)
		if err != nil || done {
			return done, err
		}
	}
	return false, nil
}

// findByID looks a literal id up the way naming containers scope ids.
//
// A leading command searches the closest naming container of current (or
// current itself when it is one), then each enclosing naming container up
// to the root. A chained command searches below current only. Nested naming
// containers are never entered: their ids must be addressed through them.
func (e *Engine) findByID(ctx *domain.SearchContext, current *domain.Component, id string, leading bool) []*domain.Component {
	skip := ctx.Has(domain.HintSkipUnrendered)

	if !leading {
		if found := searchNamespace(current, id, false, skip); found != nil {
			return []*domain.Component{found}
		}
		return nil
	}

	base := current
	if !base.IsNamingContainer() {
		if nc := base.NamingContainerOf(); nc != nil {
			base = nc
		} else {
			base = base.Root()
		}
	}
	for base != nil {
		if found := searchNamespace(base, id, true, skip); found != nil {
			return []*domain.Component{found}
		}
		next := base.NamingContainerOf()
		if next == nil && !base.IsRoot() {
			next = base.Root()
		}
		base = next
	}
	return nil
}

// searchNamespace finds id within the namespace opened by base.
func searchNamespace(base *domain.Component, id string, checkBase, skipUnrendered bool) *domain.Component {
	if checkBase && base.ID == id && (!skipUnrendered || base.IsRendered()) {
		return base
	}
	for _, child := range base.Children {
		if skipUnrendered && !child.IsRendered() {
			continue
		}
		if child.ID == id {
			return child
		}
		if child.IsNamingContainer() {
			continue
		}
		if found := searchNamespace(child, id, false, skipUnrendered); found != nil {
			return found
		}
	}
	return nil
}
