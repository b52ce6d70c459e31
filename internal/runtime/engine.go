package runtime

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/keywords"
	"github.com/aretw0/searchexpr/pkg/registry"
)

// KeywordPrefix marks a command as a keyword.
const KeywordPrefix = "@"

// DefaultSeparatorChars separate the expressions of a series.
var DefaultSeparatorChars = []rune{',', ' '}

// Engine resolves search expressions against component trees.
// It holds no per-request state and is safe for concurrent use as long as
// the registry is not mutated while resolving.
type Engine struct {
	registry   *registry.Registry
	separators []rune
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSeparatorChars overrides the characters separating expressions in a series.
func WithSeparatorChars(chars ...rune) EngineOption {
	return func(e *Engine) {
		if len(chars) > 0 {
			e.separators = append([]rune(nil), chars...)
		}
	}
}

// NewEngine creates an engine dispatching keywords to reg.
// A nil registry gets the built-in keywords.
func NewEngine(reg *registry.Registry, opts ...EngineOption) *Engine {
	if reg == nil {
		reg = registry.NewRegistry(keywords.Defaults()...)
	}
	e := &Engine{
		registry:   reg,
		separators: DefaultSeparatorChars,
		logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the keyword registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// ExpressionSeparatorChars returns the characters separating expressions in a series.
func (e *Engine) ExpressionSeparatorChars() []rune {
	return append([]rune(nil), e.separators...)
}

func (e *Engine) emit(ctx *domain.SearchContext, expression string, started time.Time, matches int, err error) {
	event := &domain.ResolveEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventResolved,
		},
		Expression: expression,
		Matches:    matches,
		Duration:   time.Since(started),
		Err:        err,
	}
	if ctx.View != nil {
		event.ViewID = ctx.View.ID
	}
	if ctx.Source != nil {
		event.SourceID = ctx.Source.ID
	}

	hook := e.hooks.OnResolve
	switch {
	case isInvalid(err):
		event.Type = domain.EventInvalid
		hook = e.hooks.OnInvalid
	case isNotFound(err):
		event.Type = domain.EventNotFound
		hook = e.hooks.OnNotFound
	}
	if hook != nil {
		hook(event)
	}
}
