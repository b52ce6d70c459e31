package runtime

import (
	"errors"
	"strings"
	"time"

	"github.com/aretw0/searchexpr/pkg/domain"
)

func isInvalid(err error) bool {
	return errors.Is(err, domain.ErrInvalidExpression)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrComponentNotFound)
}

// resolve runs one expression and applies the not-found policy.
// Passthrough expressions never fail for lack of a match.
func (e *Engine) resolve(ctx *domain.SearchContext, expression string, callback domain.Callback) (int, error) {
	started := time.Now()
	matches := 0
	p, err := e.invoke(ctx, ctx.Source, expression, func(c *domain.SearchContext, target *domain.Component) {
		matches++
		if callback != nil {
			callback(c, target)
		}
	})
	if err == nil && matches == 0 && !ctx.Has(domain.HintIgnoreNoResult) && !e.IsPassthroughExpression(ctx, expression) {
		err = &domain.NotFoundError{Expression: strings.TrimSpace(expression), Command: p.missed}
	}

	switch {
	case isNotFound(err):
		e.logger.Warn("search expression resolved to nothing", "expression", expression)
	case err != nil:
		e.logger.Debug("search expression failed", "expression", expression, "err", err)
	}
	e.emit(ctx, expression, started, matches, err)
	return matches, err
}

// passthrough reports a passthrough expression as resolved to its own token.
func (e *Engine) passthrough(ctx *domain.SearchContext, expression string) string {
	e.emit(ctx, expression, time.Now(), 1, nil)
	return strings.TrimSpace(expression)
}

// ResolveClientID resolves a single expression to one client id, or to the
// expression itself when it is a passthrough keyword. An unresolved
// expression yields "" and no error when HintIgnoreNoResult is set.
func (e *Engine) ResolveClientID(ctx *domain.SearchContext, expression string) (string, error) {
	if e.IsPassthroughExpression(ctx, expression) {
		return e.passthrough(ctx, expression), nil
	}

	var clientID string
	single := ctx.WithHints(domain.HintResolveSingleComponent)
	_, err := e.resolve(single, expression, func(c *domain.SearchContext, target *domain.Component) {
		clientID = target.ClientID(c.Separator())
	})
	if err != nil {
		return "", err
	}
	return clientID, nil
}

// ResolveClientIDs splits expressions and resolves each of them
// independently, concatenating client ids and passthrough tokens in input
// order. A failing expression does not stop the others; all failures are
// joined into the returned error.
func (e *Engine) ResolveClientIDs(ctx *domain.SearchContext, expressions string) ([]string, error) {
	var (
		ids  []string
		errs []error
	)
	for _, expr := range e.SplitExpressions(expressions) {
		if e.IsPassthroughExpression(ctx, expr) {
			ids = append(ids, e.passthrough(ctx, expr))
			continue
		}
		_, err := e.resolve(ctx, expr, func(c *domain.SearchContext, target *domain.Component) {
			ids = append(ids, target.ClientID(c.Separator()))
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return ids, errors.Join(errs...)
}

// ResolveComponent invokes callback once with the first component the
// expression resolves to.
func (e *Engine) ResolveComponent(ctx *domain.SearchContext, expression string, callback domain.Callback) error {
	_, err := e.resolve(ctx.WithHints(domain.HintResolveSingleComponent), expression, callback)
	return err
}

// ResolveComponents splits expressions and invokes callback for every
// resolved component, in input order. A component reached by several
// expressions is visited several times.
func (e *Engine) ResolveComponents(ctx *domain.SearchContext, expressions string, callback domain.Callback) error {
	var errs []error
	for _, expr := range e.SplitExpressions(expressions) {
		if _, err := e.resolve(ctx, expr, callback); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
