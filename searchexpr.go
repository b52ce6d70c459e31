package searchexpr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/searchexpr/internal/compiler"
	"github.com/aretw0/searchexpr/internal/runtime"
	"github.com/aretw0/searchexpr/internal/validator"
	loamAdapter "github.com/aretw0/searchexpr/pkg/adapters/loam"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/keywords"
	"github.com/aretw0/searchexpr/pkg/ports"
	"github.com/aretw0/searchexpr/pkg/registry"
)

// ErrNoLoader is returned by LoadView when the handler was built without views.
var ErrNoLoader = errors.New("no view loader configured")

// Handler is the high-level entry point of the library.
// It wraps the internal runtime and owns the keyword registry and the
// optional view loader.
type Handler struct {
	runtime    *runtime.Engine
	registry   *registry.Registry
	loader     ports.ViewLoader
	parser     *compiler.Parser
	appended   []ports.KeywordResolver
	prepended  []ports.KeywordResolver
	separators []rune
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	Name       string
}

// Option defines a functional option for configuring the Handler.
type Option func(*Handler)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(h *Handler) {
		h.hooks = hooks
	}
}

// WithLoader injects a custom ViewLoader, bypassing the default Loam initialization.
func WithLoader(l ports.ViewLoader) Option {
	return func(h *Handler) {
		h.loader = l
	}
}

// WithLogger sets a custom structured logger for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithRegistry replaces the built-in keyword registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(h *Handler) {
		h.registry = reg
	}
}

// WithResolvers appends keyword resolvers after the built-in ones.
func WithResolvers(resolvers ...ports.KeywordResolver) Option {
	return func(h *Handler) {
		h.appended = append(h.appended, resolvers...)
	}
}

// WithOverrides places keyword resolvers before the built-in ones, so they
// win for every keyword they claim.
func WithOverrides(resolvers ...ports.KeywordResolver) Option {
	return func(h *Handler) {
		h.prepended = append(h.prepended, resolvers...)
	}
}

// WithSeparatorChars sets the characters separating expressions in a series.
func WithSeparatorChars(chars ...rune) Option {
	return func(h *Handler) {
		h.separators = chars
	}
}

// New initializes a Handler.
// When viewsPath is set and no loader is injected, views are read from a
// Loam repository at that path. Without either, the handler still resolves
// expressions against views passed in by the caller.
func New(viewsPath string, opts ...Option) (*Handler, error) {
	h := &Handler{parser: compiler.NewParser()}
	for _, opt := range opts {
		opt(h)
	}

	if h.loader == nil && viewsPath != "" {
		loader, err := loamAdapter.Open(viewsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize views: %w", err)
		}
		h.loader = loader
	}
	if viewsPath != "" {
		h.Name = filepath.Base(viewsPath)
	}

	if h.logger == nil {
		h.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if h.Name != "" {
		h.logger = h.logger.With("views", h.Name)
	}

	if h.registry == nil {
		h.registry = registry.NewRegistry(keywords.Defaults()...)
	}
	h.registry.Prepend(h.prepended...)
	h.registry.Register(h.appended...)

	h.runtime = runtime.NewEngine(h.registry,
		runtime.WithLogger(h.logger),
		runtime.WithLifecycleHooks(h.hooks),
		runtime.WithSeparatorChars(h.separators...),
	)
	return h, nil
}

// ResolveClientID resolves a single expression to a client id, or to the
// expression itself when it is a passthrough keyword such as @all.
func (h *Handler) ResolveClientID(ctx *domain.SearchContext, expression string) (string, error) {
	return h.runtime.ResolveClientID(ctx, expression)
}

// ResolveClientIDs resolves a series of expressions, in input order.
func (h *Handler) ResolveClientIDs(ctx *domain.SearchContext, expressions string) ([]string, error) {
	return h.runtime.ResolveClientIDs(ctx, expressions)
}

// ResolveComponent invokes callback with the first component expression resolves to.
func (h *Handler) ResolveComponent(ctx *domain.SearchContext, expression string, callback domain.Callback) error {
	return h.runtime.ResolveComponent(ctx, expression, callback)
}

// ResolveComponents invokes callback for every component of every expression in the series.
func (h *Handler) ResolveComponents(ctx *domain.SearchContext, expressions string, callback domain.Callback) error {
	return h.runtime.ResolveComponents(ctx, expressions, callback)
}

// InvokeOnComponent walks expression from the context source.
func (h *Handler) InvokeOnComponent(ctx *domain.SearchContext, expression string, callback domain.Callback) error {
	return h.runtime.InvokeOnComponent(ctx, expression, callback)
}

// InvokeOnComponentFrom walks expression from previous.
func (h *Handler) InvokeOnComponentFrom(ctx *domain.SearchContext, previous *domain.Component, expression string, callback domain.Callback) error {
	return h.runtime.InvokeOnComponentFrom(ctx, previous, expression, callback)
}

// SplitExpressions splits a series into its expressions.
func (h *Handler) SplitExpressions(expressions string) []string {
	return h.runtime.SplitExpressions(expressions)
}

// IsPassthroughExpression reports whether expression is returned verbatim to the client.
func (h *Handler) IsPassthroughExpression(ctx *domain.SearchContext, expression string) bool {
	return h.runtime.IsPassthroughExpression(ctx, expression)
}

// IsValidExpression reports whether expression is well-formed against the registry.
func (h *Handler) IsValidExpression(ctx *domain.SearchContext, expression string) bool {
	return h.runtime.IsValidExpression(ctx, expression)
}

// ExpressionSeparatorChars returns the characters separating expressions in a series.
func (h *Handler) ExpressionSeparatorChars() []rune {
	return h.runtime.ExpressionSeparatorChars()
}

// Keywords lists the registered keywords in dispatch order.
func (h *Handler) Keywords() []ports.KeywordInfo {
	return h.registry.Keywords()
}

// Registry returns the keyword registry.
func (h *Handler) Registry() *registry.Registry {
	return h.registry
}

// Loader returns the configured ViewLoader, or nil.
func (h *Handler) Loader() ports.ViewLoader {
	return h.loader
}

// LoadView fetches, compiles and validates a view from the loader.
func (h *Handler) LoadView(id string) (*domain.View, error) {
	if h.loader == nil {
		return nil, ErrNoLoader
	}
	data, err := h.loader.GetView(id)
	if err != nil {
		return nil, err
	}
	view, err := h.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", id, err)
	}
	if view.ID == "" {
		view.ID = id
	}
	if err := validator.ValidateView(view); err != nil {
		return nil, fmt.Errorf("view %s is invalid: %w", id, err)
	}
	h.logger.Debug("view loaded", "view", view.ID, "components", len(view.Components()))
	return view, nil
}

// Watch returns a channel that signals the IDs of views that changed.
// Returns error if the loader does not support watching.
func (h *Handler) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := h.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}
