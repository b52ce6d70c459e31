package runtime_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/searchexpr/internal/runtime"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/keywords"
	"github.com/aretw0/searchexpr/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(into *[]string) domain.Callback {
	return func(ctx *domain.SearchContext, target *domain.Component) {
		*into = append(*into, target.ClientID(ctx.Separator()))
	}
}

func TestResolveComponent_InvokesOnce(t *testing.T) {
	view := fixtureView()
	engine := newEngine()

	var got []string
	err := engine.ResolveComponent(domain.NewSearchContext(view, nil), "@id(name)", collect(&got))
	require.NoError(t, err)
	assert.Equal(t, []string{"login:name"}, got)
}

func TestResolveComponent_NotFound(t *testing.T) {
	view := fixtureView()
	engine := newEngine()

	var got []string
	err := engine.ResolveComponent(contextAt(t, view, "login:name"), "missing", collect(&got))
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
	assert.Empty(t, got)

	err = engine.ResolveComponent(contextAt(t, view, "login:name", domain.HintIgnoreNoResult), "missing", collect(&got))
	assert.NoError(t, err)
	assert.Empty(t, got, "callback must not run when nothing is found")
}

func TestResolveComponent_PassthroughOnServer(t *testing.T) {
	view := fixtureView()
	engine := newEngine()
	ctx := contextAt(t, view, "login:name")

	var got []*domain.Component
	cb := func(_ *domain.SearchContext, target *domain.Component) {
		got = append(got, target)
	}

	require.NoError(t, engine.ResolveComponent(ctx, "@none", cb))
	assert.Empty(t, got, "@none designates nothing and is not a failure")

	require.NoError(t, engine.ResolveComponent(ctx, "@all", cb))
	require.Len(t, got, 1)
	assert.Same(t, view.Root, got[0])
}

func TestResolveComponents_VisitsDuplicates(t *testing.T) {
	view := fixtureView()
	engine := newEngine()

	var got []string
	err := engine.ResolveComponents(contextAt(t, view, "login:password"), "name @previous,:login:name", collect(&got))
	require.NoError(t, err)
	assert.Equal(t, []string{"login:name", "login:name", "login:name"}, got)
}

func TestInvokeOnComponentFrom_ExplicitPrevious(t *testing.T) {
	view := fixtureView()
	engine := newEngine()
	ctx := contextAt(t, view, "header:title")

	search := view.FindByClientID("search")
	require.NotNil(t, search)

	var got []string
	require.NoError(t, engine.InvokeOnComponentFrom(ctx, search, "name", collect(&got)))
	assert.Equal(t, []string{"search:name"}, got)

	// Nothing found is not an error at this level.
	got = nil
	require.NoError(t, engine.InvokeOnComponentFrom(ctx, search, "missing", collect(&got)))
	assert.Empty(t, got)

	// Grammar errors still are.
	err := engine.InvokeOnComponentFrom(ctx, search, "@none:name", collect(&got))
	assert.ErrorIs(t, err, domain.ErrInvalidExpression)
}

func TestInvokeOnComponent_UsesSource(t *testing.T) {
	view := fixtureView()
	engine := newEngine()

	var got []string
	require.NoError(t, engine.InvokeOnComponent(contextAt(t, view, "search:go"), "@previous", collect(&got)))
	assert.Equal(t, []string{"search:name"}, got)
}

func TestKeywordArgumentErrorsAreInvalid(t *testing.T) {
	view := fixtureView()
	engine := newEngine()
	ctx := contextAt(t, view, "login")

	for _, expr := range []string{"@child(x)", "@child", "@id()", "@this(1)"} {
		_, err := engine.ResolveClientID(ctx, expr)
		assert.ErrorIs(t, err, domain.ErrInvalidExpression, "expression %q", expr)
	}
}

func TestMalformedKeywordIsInvalidBeforeTheWalk(t *testing.T) {
	view := fixtureView()
	engine := newEngine()

	// @parent of the root is nothing, so the walk never reaches @child(x).
	for _, hints := range [][]domain.Hint{nil, {domain.HintIgnoreNoResult}} {
		ctx := domain.NewSearchContext(view, nil, hints...)

		_, err := engine.ResolveClientID(ctx, "@parent:@child(x)")
		assert.ErrorIs(t, err, domain.ErrInvalidExpression, "hints %v", hints)

		_, err = engine.ResolveClientIDs(ctx, "@parent:@this(foo)")
		assert.ErrorIs(t, err, domain.ErrInvalidExpression, "hints %v", hints)

		err = engine.InvokeOnComponent(ctx, "@parent:@child", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidExpression, "hints %v", hints)
	}
}

func TestNilMatchesAreIgnored(t *testing.T) {
	view := fixtureView()
	reg := registry.NewRegistry(keywords.Defaults()...)
	reg.Prepend(&keywords.Keyword{
		Name: "sparse",
		Fn: func(ctx *domain.SearchContext, _ *domain.Component, _ string) ([]*domain.Component, error) {
			return []*domain.Component{nil, ctx.View.FindByClientID("login"), nil}, nil
		},
	})
	engine := runtime.NewEngine(reg)
	ctx := domain.NewSearchContext(view, nil)

	ids, err := engine.ResolveClientIDs(ctx, "@sparse:name")
	require.NoError(t, err)
	assert.Equal(t, []string{"login:name"}, ids)

	ids, err = engine.ResolveClientIDs(ctx, "@sparse")
	require.NoError(t, err)
	assert.Equal(t, []string{"login"}, ids)
}

func TestCustomResolverShadowsBuiltin(t *testing.T) {
	view := fixtureView()
	reg := registry.NewRegistry(keywords.Defaults()...)
	reg.Prepend(&keywords.Keyword{
		Name: keywords.Form,
		Fn: func(ctx *domain.SearchContext, _ *domain.Component, _ string) ([]*domain.Component, error) {
			return []*domain.Component{ctx.View.FindByClientID("search")}, nil
		},
	})
	engine := runtime.NewEngine(reg)

	got, err := engine.ResolveClientID(contextAt(t, view, "login:name"), "@form")
	require.NoError(t, err)
	assert.Equal(t, "search", got)
}

func TestLifecycleHooks(t *testing.T) {
	view := fixtureView()

	var events []*domain.ResolveEvent
	record := func(e *domain.ResolveEvent) { events = append(events, e) }
	engine := newEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnResolve:  record,
		OnNotFound: record,
		OnInvalid:  record,
	}))

	ctx := contextAt(t, view, "login:name")
	_, _ = engine.ResolveClientIDs(ctx, "password missing @bogus")

	require.Len(t, events, 3)
	assert.Equal(t, domain.EventResolved, events[0].Type)
	assert.Equal(t, 1, events[0].Matches)
	assert.Equal(t, "fixture", events[0].ViewID)
	assert.Equal(t, "name", events[0].SourceID)
	assert.Equal(t, domain.EventNotFound, events[1].Type)
	assert.Equal(t, domain.EventInvalid, events[2].Type)
	assert.Error(t, events[2].Err)
}

func TestLifecycleHooks_Passthrough(t *testing.T) {
	view := fixtureView()

	var events []*domain.ResolveEvent
	engine := newEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnResolve: func(e *domain.ResolveEvent) { events = append(events, e) },
	}))
	ctx := contextAt(t, view, "login:name")

	ids, err := engine.ResolveClientIDs(ctx, "@none password @all")
	require.NoError(t, err)
	assert.Equal(t, []string{"@none", "login:password", "@all"}, ids)

	id, err := engine.ResolveClientID(ctx, "@none")
	require.NoError(t, err)
	assert.Equal(t, "@none", id)

	require.Len(t, events, 4)
	assert.Equal(t, "@none", events[0].Expression)
	assert.Equal(t, domain.EventResolved, events[0].Type)
	assert.Equal(t, 1, events[0].Matches)
	assert.Equal(t, "@all", events[2].Expression)
	assert.Equal(t, "@none", events[3].Expression)
}

func TestLoggerReceivesNotFound(t *testing.T) {
	view := fixtureView()
	var buf bytes.Buffer
	engine := newEngine(runtime.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	_, _ = engine.ResolveClientID(contextAt(t, view, "login:name"), "missing")
	assert.Contains(t, buf.String(), "search expression resolved to nothing")
}

func TestNoAnchor(t *testing.T) {
	engine := newEngine()
	err := engine.InvokeOnComponent(&domain.SearchContext{}, "name", nil)
	assert.Error(t, err)
}
