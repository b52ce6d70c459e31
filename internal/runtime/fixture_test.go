package runtime_test

import (
	"testing"

	"github.com/aretw0/searchexpr/internal/runtime"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// fixtureView builds:
//
//	root
//	├─ header (panel) ─ title
//	├─ login (form)
//	│  ├─ name, password
//	│  ├─ buttons (panel) ─ submit, reset
//	│  └─ address (composite) ─ street, city
//	├─ search (form) ─ name, go
//	└─ hiddenPanel (panel, not rendered) ─ ghost
func fixtureView() *domain.View {
	return dsl.New("fixture").
		Panel("header").
		Output("title").
		End().
		Form("login").
		Input("name").
		Input("password").
		Panel("buttons").
		Command("submit").
		Command("reset").
		End().
		Composite("address").
		Input("street").
		Input("city").
		End().
		End().
		Form("search").
		Input("name").
		Command("go").
		End().
		Panel("hiddenPanel").Hidden().
		Output("ghost").
		End().
		Build()
}

// contextAt anchors a search context at the component with the given client id.
func contextAt(t *testing.T, view *domain.View, clientID string, hints ...domain.Hint) *domain.SearchContext {
	t.Helper()
	source := view.FindByClientID(clientID)
	require.NotNil(t, source, "fixture has no component %q", clientID)
	return domain.NewSearchContext(view, source, hints...)
}

func newEngine(opts ...runtime.EngineOption) *runtime.Engine {
	return runtime.NewEngine(nil, opts...)
}
