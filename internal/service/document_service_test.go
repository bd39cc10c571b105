package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
	"github.com/pmerrell/atrium/internal/testutil"
)

func setupDocumentService(t *testing.T) DocumentService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewDocumentService(
		repository.NewSQLiteFolderRepo(database),
		repository.NewSQLiteDocumentRepo(database),
	)
}

func TestDocumentService_CreateFolderRejectsMissingParent(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	missing := "no-such-folder"
	f := &domain.Folder{Name: "Orphaned", ParentID: &missing}
	assert.Error(t, svc.CreateFolder(ctx, f))
}

func TestDocumentService_UpdateFolderRejectsCycle(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	top := &domain.Folder{Name: "Top"}
	require.NoError(t, svc.CreateFolder(ctx, top))
	mid := &domain.Folder{Name: "Mid", ParentID: &top.ID}
	require.NoError(t, svc.CreateFolder(ctx, mid))
	leaf := &domain.Folder{Name: "Leaf", ParentID: &mid.ID}
	require.NoError(t, svc.CreateFolder(ctx, leaf))

	top.ParentID = &leaf.ID
	err := svc.UpdateFolder(ctx, top)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestDocumentService_TreeAssembly(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	work := &domain.Folder{Name: "Work"}
	require.NoError(t, svc.CreateFolder(ctx, work))
	archive := &domain.Folder{Name: "Archive", ParentID: &work.ID}
	require.NoError(t, svc.CreateFolder(ctx, archive))
	home := &domain.Folder{Name: "Home"}
	require.NoError(t, svc.CreateFolder(ctx, home))

	inWork := &domain.Document{Title: "Quarterly notes", Body: "q3", FolderID: &work.ID}
	require.NoError(t, svc.Create(ctx, inWork))
	loose := &domain.Document{Title: "Scratchpad", Body: "misc"}
	require.NoError(t, svc.Create(ctx, loose))

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)

	require.Len(t, tree.Roots, 2)
	assert.Equal(t, "Home", tree.Roots[0].Folder.Name, "roots sorted by name")
	assert.Equal(t, "Work", tree.Roots[1].Folder.Name)

	workNode := tree.Roots[1]
	require.Len(t, workNode.Children, 1)
	assert.Equal(t, "Archive", workNode.Children[0].Folder.Name)
	require.Len(t, workNode.Documents, 1)
	assert.Equal(t, "Quarterly notes", workNode.Documents[0].Title)

	require.Len(t, tree.RootDocuments, 1)
	assert.Equal(t, "Scratchpad", tree.RootDocuments[0].Title)
}

func TestDocumentService_MoveToRootAndBack(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	folder := &domain.Folder{Name: "Inbox"}
	require.NoError(t, svc.CreateFolder(ctx, folder))
	doc := &domain.Document{Title: "Note", Body: "text", FolderID: &folder.ID}
	require.NoError(t, svc.Create(ctx, doc))

	require.NoError(t, svc.Move(ctx, doc.ID, nil))
	moved, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, moved.FolderID)

	require.NoError(t, svc.Move(ctx, doc.ID, &folder.ID))
	moved, err = svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, folder.ID, *moved.FolderID)
}

func TestDocumentService_MoveRejectsUnknownFolder(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	doc := &domain.Document{Title: "Note", Body: "text"}
	require.NoError(t, svc.Create(ctx, doc))

	missing := "no-such-folder"
	assert.Error(t, svc.Move(ctx, doc.ID, &missing))
}

func TestDocumentService_SetPinned(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	doc := &domain.Document{Title: "Checklist", Body: "items"}
	require.NoError(t, svc.Create(ctx, doc))

	require.NoError(t, svc.SetPinned(ctx, doc.ID, true))
	pinned, err := svc.ListPinned(ctx)
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.Equal(t, doc.ID, pinned[0].ID)

	require.NoError(t, svc.SetPinned(ctx, doc.ID, false))
	pinned, err = svc.ListPinned(ctx)
	require.NoError(t, err)
	assert.Empty(t, pinned)
}

func TestDocumentService_DeleteFolderPromotesDocuments(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	folder := &domain.Folder{Name: "Doomed"}
	require.NoError(t, svc.CreateFolder(ctx, folder))
	doc := &domain.Document{Title: "Survivor", Body: "text", FolderID: &folder.ID}
	require.NoError(t, svc.Create(ctx, doc))

	require.NoError(t, svc.DeleteFolder(ctx, folder.ID))

	kept, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.FolderID)
}

func TestDocumentService_SearchTrimsQuery(t *testing.T) {
	svc := setupDocumentService(t)
	ctx := context.Background()

	doc := &domain.Document{Title: "Travel plans", Body: "pack light"}
	require.NoError(t, svc.Create(ctx, doc))

	results, err := svc.Search(ctx, "  travel  ")
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}
