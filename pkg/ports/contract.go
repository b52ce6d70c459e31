package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractView(id string) *domain.View {
	root := &domain.Component{ID: "root"}
	form := root.AddChild(&domain.Component{ID: "form", Family: domain.FamilyForm})
	form.AddChild(&domain.Component{ID: "name", Family: domain.FamilyInput})
	return domain.NewView(id, root)
}

// RunViewStoreContract runs a suite of tests to verify that a ViewStore implementation
// adheres to the defined interface contract.
func RunViewStoreContract(t *testing.T, store ViewStore) {
	ctx := context.Background()
	viewID := "contract-test-view-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		view := contractView(viewID)

		err := store.Save(ctx, view)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, viewID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, viewID, loaded.ID)
		assert.Equal(t, domain.DefaultSeparator, loaded.Separator)

		// Parent pointers must survive the round trip, otherwise client ids break.
		name := loaded.FindByClientID("form:name")
		require.NotNil(t, name, "loaded view should be linked")
		assert.Equal(t, "form", name.Parent().ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+viewID)
		assert.ErrorIs(t, err, domain.ErrViewNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractView(viewID))
		require.NoError(t, err)

		err = store.Delete(ctx, viewID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, viewID)
		assert.ErrorIs(t, err, domain.ErrViewNotFound, "Load after Delete should return ErrViewNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := viewID + "-1"
		id2 := viewID + "-2"
		_ = store.Save(ctx, contractView(id1))
		_ = store.Save(ctx, contractView(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		views, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, views, id1)
		assert.Contains(t, views, id2)
	})
}
