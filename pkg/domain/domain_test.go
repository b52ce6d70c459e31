package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// root
// ├── header (panel)
// │   └── search (form)
// │       └── q
// └── main (naming container panel)
//     └── login (form)
//         ├── name
//         └── hint (rendered=false)
func fixture() *domain.View {
	hidden := false
	root := &domain.Component{ID: "root"}
	header := root.AddChild(&domain.Component{ID: "header", Family: domain.FamilyPanel})
	search := header.AddChild(&domain.Component{ID: "search", Family: domain.FamilyForm})
	search.AddChild(&domain.Component{ID: "q", Family: domain.FamilyInput})
	main := root.AddChild(&domain.Component{ID: "main", Family: domain.FamilyPanel, NamingContainer: true})
	login := main.AddChild(&domain.Component{ID: "login", Family: domain.FamilyForm})
	login.AddChild(&domain.Component{ID: "name", Family: domain.FamilyInput, Attributes: map[string]string{"size": "20"}})
	login.AddChild(&domain.Component{ID: "hint", Family: domain.FamilyOutput, Rendered: &hidden})
	return domain.NewView("page", root)
}

func TestComponent_ClientID(t *testing.T) {
	v := fixture()

	tests := []struct {
		clientID string
		sep      rune
	}{
		{"header", ':'},
		{"search", ':'},
		{"search:q", ':'},
		{"main", ':'},
		{"main:login", ':'},
		{"main:login:name", ':'},
	}
	for _, tt := range tests {
		c := v.FindByClientID(tt.clientID)
		require.NotNil(t, c, tt.clientID)
		assert.Equal(t, tt.clientID, c.ClientID(tt.sep))
	}

	name := v.FindByClientID("main:login:name")
	assert.Equal(t, "main_login_name", name.ClientID('_'))
	assert.Equal(t, "root", v.Root.ClientID(':'))
}

func TestComponent_Navigation(t *testing.T) {
	v := fixture()
	name := v.FindByClientID("main:login:name")
	require.NotNil(t, name)

	assert.Equal(t, "login", name.Parent().ID)
	assert.Same(t, v.Root, name.Root())
	assert.Equal(t, "login", name.NamingContainerOf().ID)
	assert.Equal(t, "main", name.Parent().NamingContainerOf().ID)
	assert.Nil(t, v.FindByClientID("header").NamingContainerOf())
	assert.Equal(t, 0, name.Index())
	assert.Equal(t, -1, v.Root.Index())
	assert.True(t, v.Root.IsRoot())
	assert.Equal(t, domain.FamilyRoot, v.Root.Family)

	assert.True(t, v.FindByClientID("main").IsNamingContainer())
	assert.False(t, v.FindByClientID("header").IsNamingContainer())
	assert.False(t, v.FindByClientID("main:login:hint").IsRendered())
	assert.True(t, name.IsRendered())
}

func TestView_Components(t *testing.T) {
	v := fixture()
	var ids []string
	for _, c := range v.Components() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"root", "header", "search", "q", "main", "login", "name", "hint"}, ids)

	assert.Empty(t, (&domain.View{}).Components())
	assert.Nil(t, (&domain.View{}).FindByClientID("x"))
}

func TestComponent_WalkPrunes(t *testing.T) {
	v := fixture()
	var visited []string
	v.Root.Walk(func(c *domain.Component) bool {
		visited = append(visited, c.ID)
		return !c.IsNamingContainer()
	})
	assert.Equal(t, []string{"root", "header", "search", "main"}, visited)
}

func TestView_Clone(t *testing.T) {
	v := fixture()
	cp := v.Clone()

	name := cp.FindByClientID("main:login:name")
	require.NotNil(t, name)
	name.Attributes["size"] = "40"
	*cp.FindByClientID("main:login:hint").Rendered = true

	assert.Equal(t, "20", v.FindByClientID("main:login:name").Attributes["size"])
	assert.False(t, v.FindByClientID("main:login:hint").IsRendered())
	assert.NotSame(t, v.Root, cp.Root)
	assert.Same(t, cp.Root, name.Root())
}

func TestView_JSONRoundTripNeedsLink(t *testing.T) {
	data, err := json.Marshal(fixture())
	require.NoError(t, err)

	var decoded domain.View
	require.NoError(t, json.Unmarshal(data, &decoded))
	decoded.Link()

	assert.Equal(t, domain.DefaultSeparator, decoded.Separator)
	require.NotNil(t, decoded.FindByClientID("main:login:name"))
	assert.Equal(t, "login", decoded.FindByClientID("main:login:name").Parent().ID)
}

func TestSearchContext(t *testing.T) {
	v := fixture()

	ctx := domain.NewSearchContext(v, nil, domain.HintSkipUnrendered)
	assert.Same(t, v.Root, ctx.Source)
	assert.True(t, ctx.Has(domain.HintSkipUnrendered))
	assert.False(t, ctx.Has(domain.HintIgnoreNoResult))
	assert.Equal(t, ':', ctx.Separator())

	next := ctx.WithHints(domain.HintIgnoreNoResult)
	assert.True(t, next.Has(domain.HintIgnoreNoResult))
	assert.True(t, next.Has(domain.HintSkipUnrendered))
	assert.False(t, ctx.Has(domain.HintIgnoreNoResult), "WithHints must not mutate the receiver")

	detached := domain.NewSearchContext(nil, v.FindByClientID("search:q"))
	assert.Same(t, v.Root, detached.Root())
	assert.Equal(t, domain.DefaultSeparator, detached.Separator())
}

func TestParseHint(t *testing.T) {
	for _, name := range []string{"ignore_no_result", "resolve_single_component", "skip_unrendered"} {
		h, ok := domain.ParseHint(name)
		assert.True(t, ok, name)
		assert.Equal(t, domain.Hint(name), h)
	}
	_, ok := domain.ParseHint("resolve_client_side")
	assert.False(t, ok)
}

func TestErrors(t *testing.T) {
	var err error = &domain.NotFoundError{Expression: "a:b", Command: "b"}
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
	assert.Contains(t, err.Error(), `(command "b")`)
	assert.NotContains(t, (&domain.NotFoundError{Expression: "a"}).Error(), "command")

	err = fmt.Errorf("wrapped: %w", &domain.InvalidExpressionError{Expression: "@", Reason: "empty keyword"})
	assert.ErrorIs(t, err, domain.ErrInvalidExpression)
	var invalid *domain.InvalidExpressionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "empty keyword", invalid.Reason)
}
