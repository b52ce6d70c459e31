package tests

import (
	"sort"
	"testing"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ViewLoaderContractTest verifies that loader serves exactly the documents in
// setupData, reports unknown ids as domain.ErrViewNotFound and lists ids in
// sorted order.
func ViewLoaderContractTest(t *testing.T, loader ports.ViewLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("GetView_Success", func(t *testing.T) {
		for id, expected := range setupData {
			content, err := loader.GetView(id)
			require.NoError(t, err, "view %s", id)
			assert.Equal(t, string(expected), string(content), "content mismatch for %s", id)
		}
	})

	t.Run("GetView_NotFound", func(t *testing.T) {
		_, err := loader.GetView("non-existent-view")
		assert.ErrorIs(t, err, domain.ErrViewNotFound)
	})

	t.Run("ListViews", func(t *testing.T) {
		views, err := loader.ListViews()
		require.NoError(t, err)

		expected := make([]string, 0, len(setupData))
		for id := range setupData {
			expected = append(expected, id)
		}
		sort.Strings(expected)
		assert.Equal(t, expected, views)
	})
}
