package db

import (
	"testing"

	"docs-editor/pkg/doctree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProjectStore_Lifecycle(t *testing.T) {
	store := NewMemoryProjectStore()
	defer store.Close()

	created, err := store.CreateProject(doctree.DemoProject())
	require.NoError(t, err)
	assert.Equal(t, "demo_project", created.ID)
	assert.Equal(t, 1, created.Version)

	_, err = store.CreateProject(doctree.DemoProject())
	assert.Error(t, err)

	tree := created.Tree
	tree.Sections[0].Title = "Renamed"
	saved, err := store.SaveProject(tree)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Version)

	tree.Sections[0].Title = "not saved"
	got, err := store.GetProject("demo_project")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Tree.Sections[0].Title)

	got.Tree.Sections[0].Title = "local change"
	again, _ := store.GetProject("demo_project")
	assert.Equal(t, "Renamed", again.Tree.Sections[0].Title)

	require.NoError(t, store.DeleteProject("demo_project"))
	_, err = store.GetProject("demo_project")
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, store.DeleteProject("demo_project"), ErrProjectNotFound)

	_, err = store.SaveProject(tree)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestMemoryProjectStore_GeneratesID(t *testing.T) {
	store := NewMemoryProjectStore()

	created, err := store.CreateProject(nil)
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)
	assert.Equal(t, created.ID, created.Tree.ProjectID)
	assert.Empty(t, created.Tree.Sections)

	list, err := store.ListProjects()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestMemoryProjectStore_CreateNormalizes(t *testing.T) {
	store := NewMemoryProjectStore()

	tree := &doctree.Project{ProjectID: "p", Sections: []*doctree.Section{
		{Position: 5, Docs: []*doctree.Document{{Position: 3}}},
	}}
	created, err := store.CreateProject(tree)
	require.NoError(t, err)
	assert.Equal(t, 1, created.Tree.Sections[0].Position)
	assert.Equal(t, 1, created.Tree.Sections[0].Docs[0].Position)
	assert.Len(t, created.Tree.Sections[0].Docs[0].Content, 1)
	assert.Equal(t, 5, tree.Sections[0].Position)

	_, err = store.CreateProject(&doctree.Project{ProjectID: "bad", Sections: []*doctree.Section{nil}})
	assert.ErrorIs(t, err, doctree.ErrMalformedTree)
	_, err = store.GetProject("bad")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
