package keywords_test

import (
	"testing"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/dsl"
	"github.com/aretw0/searchexpr/pkg/keywords"
	"github.com/aretw0/searchexpr/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view() *domain.View {
	return dsl.New("kw").
		Form("f").
		Input("first").
		Input("second").
		Composite("cc").
		Panel("inner").
		Input("deep").
		End().
		End().
		End().
		Build()
}

// resolve runs keyword against the component at clientID and returns the client ids found.
func resolve(t *testing.T, v *domain.View, clientID, keyword string) []string {
	t.Helper()
	ctx := domain.NewSearchContext(v, v.FindByClientID(clientID))
	require.NotNil(t, ctx.Source, "no component %q", clientID)

	reg := registry.NewRegistry(keywords.Defaults()...)
	res, ok := reg.Find(ctx, keyword)
	require.True(t, ok, "no resolver for %q", keyword)

	found, err := res.Resolve(ctx, ctx.Source, keyword)
	require.NoError(t, err)

	ids := make([]string, 0, len(found))
	for _, c := range found {
		ids = append(ids, c.ClientID(ctx.Separator()))
	}
	return ids
}

func TestBuiltinKeywords(t *testing.T) {
	v := view()

	tests := []struct {
		source  string
		keyword string
		want    []string
	}{
		{"f:first", "this", []string{"f:first"}},
		{"f:first", "parent", []string{"f"}},
		{"f", "child(1)", []string{"f:second"}},
		{"f", "child(9)", []string{}},
		{"f:cc:deep", "composite", []string{"f:cc"}},
		{"f:first", "composite", []string{}},
		{"f:cc:deep", "form", []string{"f"}},
		{"f", "form", []string{"f"}},
		{"f:first", "next", []string{"f:second"}},
		{"f:cc", "next", []string{}},
		{"f:second", "previous", []string{"f:first"}},
		{"f:first", "previous", []string{}},
		{"f:cc:deep", "namingcontainer", []string{"f:cc"}},
		{"f:cc", "namingcontainer", []string{"f"}},
		{"f:cc:deep", "root", []string{"root"}},
		{"f", "id(deep)", []string{"f:cc:deep"}},
		{"f:first", "none", []string{}},
		{"f:first", "all", []string{"root"}},
	}

	for _, tt := range tests {
		t.Run(tt.source+"@"+tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(t, v, tt.source, tt.keyword))
		})
	}
}

func TestRootHasNoParentOrSiblings(t *testing.T) {
	v := view()
	for _, kw := range []string{"parent", "next", "previous", "namingcontainer"} {
		assert.Empty(t, resolve(t, v, "root", kw), kw)
	}
}

func TestPassthroughAndLeafFlags(t *testing.T) {
	ctx := domain.NewSearchContext(view(), nil)
	reg := registry.NewRegistry(keywords.Defaults()...)

	for _, kw := range []string{keywords.None, keywords.All} {
		res, ok := reg.Find(ctx, kw)
		require.True(t, ok)
		assert.True(t, res.IsPassthrough(ctx, kw), kw)
		assert.True(t, res.IsLeaf(ctx, kw), kw)
	}
	for _, kw := range []string{keywords.This, keywords.Form, "id(x)"} {
		res, ok := reg.Find(ctx, kw)
		require.True(t, ok)
		assert.False(t, res.IsPassthrough(ctx, kw), kw)
		assert.False(t, res.IsLeaf(ctx, kw), kw)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in, name, arg string
		ok            bool
	}{
		{"child(2)", "child", "2", true},
		{"id(a:b)", "id", "a:b", true},
		{"form", "form", "", false},
		{"child(2", "child(2", "", false},
		{"(x)", "(x)", "", false},
	}
	for _, tt := range tests {
		name, arg, ok := keywords.Parse(tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.arg, arg, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestKeywordArguments(t *testing.T) {
	ctx := domain.NewSearchContext(view(), nil)
	child := &keywords.Keyword{Name: "child", Argument: true}

	_, err := child.Resolve(ctx, ctx.Source, "child")
	assert.Error(t, err)
	_, err = child.Resolve(ctx, ctx.Source, "child( )")
	assert.Error(t, err)

	this := &keywords.Keyword{Name: "this"}
	_, err = this.Resolve(ctx, ctx.Source, "this(1)")
	assert.Error(t, err)
}

func TestValidateKeyword(t *testing.T) {
	ctx := domain.NewSearchContext(view(), nil)
	byName := map[string]*keywords.Keyword{}
	for _, r := range keywords.Defaults() {
		k := r.(*keywords.Keyword)
		byName[k.Name] = k
	}

	valid := map[string]string{
		keywords.Child:  "child(0)",
		keywords.ID:     "id(name)",
		keywords.This:   "this",
		keywords.Parent: "parent",
	}
	for name, kw := range valid {
		assert.NoError(t, byName[name].ValidateKeyword(ctx, kw), kw)
	}

	invalid := map[string][]string{
		keywords.Child: {"child", "child()", "child(x)", "child(-1)"},
		keywords.ID:    {"id", "id( )"},
		keywords.This:  {"this(foo)"},
		keywords.None:  {"none(1)"},
	}
	for name, kws := range invalid {
		for _, kw := range kws {
			assert.Error(t, byName[name].ValidateKeyword(ctx, kw), kw)
		}
	}
}

func TestKeywordsDocumentation(t *testing.T) {
	reg := registry.NewRegistry(keywords.Defaults()...)
	infos := reg.Keywords()
	require.Len(t, infos, 12)
	assert.Equal(t, "@this", infos[0].Name)
	assert.Equal(t, "@child(...)", infos[2].Name)
}
