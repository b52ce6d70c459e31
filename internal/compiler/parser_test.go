package compiler_test

import (
	"testing"

	"github.com/aretw0/searchexpr/internal/compiler"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAML(t *testing.T) {
	view, err := compiler.NewParser().Parse([]byte(`
id: checkout
separator: "_"
root:
  id: root
  children:
    - id: pay
      type: form
      children:
        - id: card
          family: input
          attributes:
            maxlength: 16
            autocomplete: "off"
        - id: cvv
          rendered: false
    - id: table
      naming_container: true
      children:
        - id: row
`))
	require.NoError(t, err)

	assert.Equal(t, "checkout", view.ID)
	assert.Equal(t, '_', view.Separator)
	assert.Equal(t, domain.FamilyRoot, view.Root.Family)

	card := view.FindByClientID("pay_card")
	require.NotNil(t, card)
	assert.Equal(t, domain.FamilyInput, card.Family)
	assert.Equal(t, "16", card.Attributes["maxlength"], "numbers decode weakly into strings")
	assert.Equal(t, "pay", card.Parent().ID)

	cvv := view.FindByClientID("pay_cvv")
	require.NotNil(t, cvv)
	assert.False(t, cvv.IsRendered())

	assert.NotNil(t, view.FindByClientID("table_row"))
}

func TestParse_JSONFromMemoryLoader(t *testing.T) {
	loader, err := dsl.New("v").Form("f").Input("x").End().Loader()
	require.NoError(t, err)
	raw, err := loader.GetView("v")
	require.NoError(t, err)

	view, err := compiler.NewParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSeparator, view.Separator, "numeric separators are code points")
	assert.NotNil(t, view.FindByClientID("f:x"))
}

func TestParse_Errors(t *testing.T) {
	parser := compiler.NewParser()

	tests := map[string]string{
		"empty":         ``,
		"not a mapping": `- a`,
		"no root":       `id: v`,
		"bad separator": "id: v\nseparator: \"::\"\nroot:\n  id: root\n",
		"bad children":  "id: v\nroot:\n  id: root\n  children: 3\n",
	}
	for name, doc := range tests {
		_, err := parser.Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}
