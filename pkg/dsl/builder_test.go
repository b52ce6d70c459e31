package dsl

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_NestedScopes(t *testing.T) {
	view := New("login").
		Form("login").
		Input("name").
		Panel("buttons").
		Command("submit").
		End().
		End().
		Output("footer").
		Build()

	require.Equal(t, "login", view.ID)
	assert.Equal(t, domain.FamilyRoot, view.Root.Family)

	submit := view.FindByClientID("login:submit")
	require.NotNil(t, submit, "panels are not naming containers")
	assert.Equal(t, "buttons", submit.Parent().ID)

	footer := view.FindByClientID("footer")
	require.NotNil(t, footer)
	assert.Equal(t, view.Root, footer.Parent())
}

func TestBuilder_AttrAndHidden(t *testing.T) {
	view := New("v").
		Input("secret").Attr("redisplay", "false").Hidden().
		Build()

	secret := view.Root.Children[0]
	assert.Equal(t, "false", secret.Attributes["redisplay"])
	assert.False(t, secret.IsRendered())
}

func TestBuilder_Container(t *testing.T) {
	view := New("v").
		Container("table").
		Output("cell").
		End().
		Build()

	assert.NotNil(t, view.FindByClientID("table:cell"))
}

func TestBuilder_Loader(t *testing.T) {
	loader, err := New("v").Form("f").Input("x").End().Loader()
	require.NoError(t, err)

	raw, err := loader.GetView("v")
	require.NoError(t, err)

	var decoded domain.View
	require.NoError(t, json.Unmarshal(raw, &decoded))
	decoded.Link()
	assert.NotNil(t, decoded.FindByClientID("f:x"))
}

func TestBuilder_EndAtRootIsNoop(t *testing.T) {
	view := New("v").End().End().Input("a").Build()
	require.Len(t, view.Root.Children, 1)
}
