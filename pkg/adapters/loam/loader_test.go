package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/searchexpr/internal/compiler"
	"github.com/aretw0/searchexpr/internal/dto"
	"github.com/aretw0/searchexpr/internal/testutils"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginDoc = `---
id: login
root:
  id: root
  children:
    - id: form
      family: form
      children:
        - id: name
          family: input
        - id: submit
          family: command
---
The login page.`

func TestLoader_GetView_Compiles(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, core.Document{ID: "login.md", Content: loginDoc}))

	loader := New(loam.NewTypedRepository[dto.ViewMetadata](repo))

	data, err := loader.GetView("login")
	require.NoError(t, err)

	// The returned bytes must compile into a linked view.
	view, err := compiler.NewParser().Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "login", view.ID)
	require.NotNil(t, view.FindByClientID("form:submit"))

	ids, err := loader.ListViews()
	require.NoError(t, err)
	assert.Equal(t, []string{"login"}, ids)

	_, err = loader.GetView("non-existent-view")
	assert.ErrorIs(t, err, domain.ErrViewNotFound)
}

func TestLoader_ListViews_NormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"checkout.md":  "---\nid: checkout.md\nroot:\n  id: root\n---\n",
		"search.json":  `{"id": "search.json", "root": {"id": "root"}}`,
		"implicit.yml": "root:\n  id: root\n",
	})

	loader := New(loam.NewTypedRepository[dto.ViewMetadata](repo))

	ids, err := loader.ListViews()
	require.NoError(t, err)
	assert.Equal(t, []string{"checkout", "implicit", "search"}, ids)
}

func TestLoader_ListViews_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"foo.md":   "---\nid: foo\nroot:\n  id: root\n---\n",
		"foo.json": `{"id": "foo", "root": {"id": "root"}}`,
	})

	loader := New(loam.NewTypedRepository[dto.ViewMetadata](repo))

	_, err := loader.ListViews()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestLoader_GetView_NormalizesID(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"view.json": `{"id": "view.json", "separator": "_", "root": {"id": "root"}}`,
	})

	loader := New(loam.NewTypedRepository[dto.ViewMetadata](repo))

	data, err := loader.GetView("view")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"view"`)
	assert.NotContains(t, string(data), `"id":"view.json"`)
	assert.Contains(t, string(data), `"separator":"_"`)
}

func TestLoader_GetView_RequiresRoot(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"empty.md": "---\nid: empty\n---\nNo tree here",
	})

	loader := New(loam.NewTypedRepository[dto.ViewMetadata](repo))

	_, err := loader.GetView("empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no root")
}

func TestOpen_MissingDirectory(t *testing.T) {
	_, err := Open(t.TempDir() + "/missing")
	assert.Error(t, err)
}
