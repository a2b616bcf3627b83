// ABOUTME: Tests for the posts CLI subcommands.
// ABOUTME: Swaps the remote client for a seeded memory store and checks printed output.
package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/postboard/internal/storage"
)

func withMemoryStore(t *testing.T) (*storage.MemoryStore, *bytes.Buffer) {
	t.Helper()
	store := storage.NewSeededMemoryStore()
	out := &bytes.Buffer{}

	prevStore, prevOut := newPostStore, postsOut
	newPostStore = func() storage.PostStore { return store }
	postsOut = out
	t.Cleanup(func() {
		newPostStore, postsOut = prevStore, prevOut
		postsSort, postsDirection, postsTitle, postsContent = "", "", "", ""
	})
	return store, out
}

func TestPostsListSorted(t *testing.T) {
	_, out := withMemoryStore(t)
	postsSort, postsDirection = "title", "desc"

	require.NoError(t, runPostsList(postsListCmd, nil))

	text := out.String()
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Second post")), bytes.Index(out.Bytes(), []byte("First post")), text)
}

func TestPostsListInvalidSort(t *testing.T) {
	withMemoryStore(t)
	postsSort = "id"

	err := runPostsList(postsListCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid sort field 'id'")
}

func TestPostsCreate(t *testing.T) {
	store, out := withMemoryStore(t)

	require.NoError(t, runPostsCreate(postsCreateCmd, []string{"Third", "More text"}))
	assert.Equal(t, "Post created (ID: 3)\n", out.String())
	assert.Equal(t, 3, store.Len())
}

func TestPostsUpdateKeepsOmittedField(t *testing.T) {
	store, out := withMemoryStore(t)
	require.NoError(t, postsUpdateCmd.Flags().Set("title", "Renamed"))
	t.Cleanup(func() { postsUpdateCmd.Flags().Lookup("title").Changed = false })

	require.NoError(t, runPostsUpdate(postsUpdateCmd, []string{"1"}))
	assert.Equal(t, "Post 1 updated\n", out.String())

	post, err := store.GetPost(1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", post.Title)
	assert.Equal(t, "This is the first post.", post.Content)
}

func TestPostsUpdateRequiresField(t *testing.T) {
	withMemoryStore(t)

	err := runPostsUpdate(postsUpdateCmd, []string{"1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestPostsDelete(t *testing.T) {
	store, out := withMemoryStore(t)

	require.NoError(t, runPostsDelete(postsDeleteCmd, []string{"2"}))
	assert.Equal(t, "Post with id 2 has been deleted successfully.\n", out.String())
	assert.Equal(t, 1, store.Len())

	err := runPostsDelete(postsDeleteCmd, []string{"2"})
	require.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestPostsDeleteInvalidID(t *testing.T) {
	withMemoryStore(t)

	for _, raw := range []string{"abc", "0", "-3"} {
		assert.Error(t, runPostsDelete(postsDeleteCmd, []string{raw}), raw)
	}
}

func TestPostsSearch(t *testing.T) {
	_, out := withMemoryStore(t)
	postsContent = "SECOND"

	require.NoError(t, runPostsSearch(postsSearchCmd, nil))
	assert.Contains(t, out.String(), "#2 Second post")
	assert.NotContains(t, out.String(), "First post")
}

func TestPostsSearchNoMatch(t *testing.T) {
	_, out := withMemoryStore(t)
	postsTitle = "nothing like this"

	require.NoError(t, runPostsSearch(postsSearchCmd, nil))
	assert.Equal(t, "No posts found.\n", out.String())
}
