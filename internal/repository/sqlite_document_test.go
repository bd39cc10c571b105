package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrell/atrium/internal/repository"
	"github.com/pmerrell/atrium/internal/testutil"
)

func TestFolderRepo_TreeQueries(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteFolderRepo(database)
	ctx := context.Background()

	root := testutil.MakeFolder(t, database, "Projects", nil)
	childA := testutil.MakeFolder(t, database, "Atrium", &root.ID)
	testutil.MakeFolder(t, database, "Zephyr", &root.ID)
	testutil.MakeFolder(t, database, "Archive", nil)

	roots, err := repo.ListRoots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Archive", roots[0].Name, "roots sorted by name")
	assert.Equal(t, "Projects", roots[1].Name)

	children, err := repo.ListChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Atrium", children[0].Name)

	grand, err := repo.ListChildren(ctx, childA.ID)
	require.NoError(t, err)
	assert.Empty(t, grand)
}

func TestFolderRepo_CascadeDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteFolderRepo(database)
	ctx := context.Background()

	root := testutil.MakeFolder(t, database, "Root", nil)
	child := testutil.MakeFolder(t, database, "Child", &root.ID)

	require.NoError(t, repo.Delete(ctx, root.ID))

	_, err := repo.GetByID(ctx, child.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "children are removed with their parent")
}

func TestDocumentRepo_FolderDeleteOrphansToRoot(t *testing.T) {
	database := testutil.NewTestDB(t)
	folderRepo := repository.NewSQLiteFolderRepo(database)
	docRepo := repository.NewSQLiteDocumentRepo(database)
	ctx := context.Background()

	folder := testutil.MakeFolder(t, database, "Inbox", nil)
	doc := testutil.MakeDocument(t, database, "Kept", "body", &folder.ID)

	require.NoError(t, folderRepo.Delete(ctx, folder.ID))

	got, err := docRepo.GetByID(ctx, doc.ID)
	require.NoError(t, err, "documents survive folder deletion")
	assert.Nil(t, got.FolderID, "orphaned documents move to the root")
}

func TestDocumentRepo_Search(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteDocumentRepo(database)
	ctx := context.Background()

	testutil.MakeDocument(t, database, "Meeting notes", "quarterly planning agenda", nil)
	testutil.MakeDocument(t, database, "Recipes", "banana bread", nil)
	testutil.MakeDocument(t, database, "Planning checklist", "", nil)

	got, err := repo.Search(ctx, "planning")
	require.NoError(t, err)
	require.Len(t, got, 2, "matches in title or body")

	none, err := repo.Search(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDocumentRepo_PinnedOrdering(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteDocumentRepo(database)
	ctx := context.Background()

	testutil.MakeDocument(t, database, "Alpha", "", nil)
	pinned := testutil.MakeDocument(t, database, "Zulu", "", nil)
	pinned.Pinned = true
	require.NoError(t, repo.Update(ctx, pinned))

	got, err := repo.ListRootDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zulu", got[0].Title, "pinned documents sort first")

	onlyPinned, err := repo.ListPinned(ctx)
	require.NoError(t, err)
	require.Len(t, onlyPinned, 1)
	assert.Equal(t, pinned.ID, onlyPinned[0].ID)
}
