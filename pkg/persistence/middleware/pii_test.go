package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/searchexpr/pkg/adapters/memory"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/persistence/middleware"
	"github.com/aretw0/searchexpr/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{"(?i)password", "^ssn"})
	require.NoError(t, err)
	store := mw(underlying)

	root := &domain.Component{ID: "root"}
	form := root.AddChild(&domain.Component{ID: "signup", Family: domain.FamilyForm})
	form.AddChild(&domain.Component{ID: "user", Attributes: map[string]string{"value": "jdoe"}})
	form.AddChild(&domain.Component{ID: "pw", Attributes: map[string]string{"userPassword": "secret123", "label": "Password"}})
	form.AddChild(&domain.Component{ID: "id", Attributes: map[string]string{"ssn_number": "999-99-9999"}})
	view := domain.NewView("signup", root)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, view))

	// The caller's tree is untouched.
	assert.Equal(t, "secret123", view.FindByClientID("signup:pw").Attributes["userPassword"])

	stored, err := underlying.Load(ctx, "signup")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", stored.FindByClientID("signup:user").Attributes["value"])
	assert.Equal(t, middleware.Mask, stored.FindByClientID("signup:pw").Attributes["userPassword"])
	assert.Equal(t, "Password", stored.FindByClientID("signup:pw").Attributes["label"])
	assert.Equal(t, middleware.Mask, stored.FindByClientID("signup:id").Attributes["ssn_number"])

	loaded, err := store.Load(ctx, "signup")
	require.NoError(t, err)
	assert.Equal(t, stored.FindByClientID("signup:pw").Attributes, loaded.FindByClientID("signup:pw").Attributes)
}

func TestPIIMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewPIIMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestPIIMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewPIIMiddleware(nil)
	require.NoError(t, err)
	ports.RunViewStoreContract(t, middleware.Chain(memory.NewStore(), mw))
}
