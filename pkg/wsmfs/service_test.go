package wsmfs

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcd386/WSM-File-System/pkg/models"
	"github.com/jcd386/WSM-File-System/pkg/store/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return NewService(st, 0, zerolog.Nop(), nil)
}

func mustFolder(t *testing.T, svc *Service, name string, anchor models.AnchorID, parent *models.FolderID) *models.Folder {
	t.Helper()
	f, err := svc.CreateFolder(context.Background(), name, anchor, parent, "tester")
	require.NoError(t, err)
	return f
}

func TestCreateFolderValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, "", "ACC-1", nil, "tester")
	assert.Equal(t, ErrorValidation, KindOf(err))

	_, err = svc.CreateFolder(ctx, "bad/name", "ACC-1", nil, "tester")
	assert.Equal(t, ErrorValidation, KindOf(err))

	_, err = svc.CreateFolder(ctx, "ok", "", nil, "tester")
	assert.Equal(t, ErrorValidation, KindOf(err))

	missing := models.NewFolderID()
	_, err = svc.CreateFolder(ctx, "ok", "ACC-1", &missing, "tester")
	assert.Equal(t, ErrorNotFound, KindOf(err))
}

func TestListContentsOrdering(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	root := mustFolder(t, svc, "Root", "ACC-1", nil)
	mustFolder(t, svc, "Zeta", "ACC-1", &root.ID)
	mustFolder(t, svc, "Alpha", "ACC-1", &root.ID)
	_, err := svc.CreateFileRecord(ctx, "notes.txt", root.ID, "blob-1", "tester")
	require.NoError(t, err)
	_, err = svc.CreateFileRecord(ctx, "agenda.txt", root.ID, "blob-2", "tester")
	require.NoError(t, err)

	nodes, err := svc.ListContents(ctx, "ACC-1", &root.ID)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	// Folders first, then files, each group name-ordered.
	assert.Equal(t, "Alpha", nodes[0].Label)
	assert.Equal(t, models.NodeKindFolder, nodes[0].NodeKind)
	assert.Equal(t, "Zeta", nodes[1].Label)
	assert.Equal(t, "agenda.txt", nodes[2].Label)
	assert.Equal(t, models.NodeKindFile, nodes[2].NodeKind)
	assert.Equal(t, "notes.txt", nodes[3].Label)
}

func TestListContentsRootAndMissingFolder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	nodes, err := svc.ListContents(ctx, "ACC-1", nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	missing := models.NewFolderID()
	_, err = svc.ListContents(ctx, "ACC-1", &missing)
	assert.Equal(t, ErrorNotFound, KindOf(err))
}

func TestRenameFolderNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f := mustFolder(t, svc, "Reports", "ACC-1", nil)
	before := f.UpdatedAt

	same, err := svc.RenameFolder(ctx, f.ID, "Reports")
	require.NoError(t, err)
	assert.True(t, same.UpdatedAt.Equal(before), "no-op rename must not touch timestamps")

	renamed, err := svc.RenameFolder(ctx, f.ID, "Reports 2024")
	require.NoError(t, err)
	assert.Equal(t, "Reports 2024", renamed.Name)
}

func TestMoveFolderSelfReject(t *testing.T) {
	svc := newTestService(t)

	f := mustFolder(t, svc, "A", "ACC-1", nil)
	err := svc.MoveFolder(context.Background(), f.ID, &f.ID)
	assert.Equal(t, ErrorCycle, KindOf(err))
}

func TestMoveFolderCycleReject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := mustFolder(t, svc, "A", "ACC-1", nil)
	b := mustFolder(t, svc, "B", "ACC-1", &a.ID)
	c := mustFolder(t, svc, "C", "ACC-1", &b.ID)

	err := svc.MoveFolder(ctx, a.ID, &c.ID)
	assert.Equal(t, ErrorCycle, KindOf(err))

	// The rejected move leaves every parent reference unchanged.
	gotA, err := svc.store.GetFolder(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, gotA.ParentFolderID)
	gotC, err := svc.store.GetFolder(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *gotC.ParentFolderID)
}

func TestMoveFolderToRootAndBack(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := mustFolder(t, svc, "A", "ACC-1", nil)
	b := mustFolder(t, svc, "B", "ACC-1", &a.ID)

	require.NoError(t, svc.MoveFolder(ctx, b.ID, nil))
	got, err := svc.store.GetFolder(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentFolderID)

	require.NoError(t, svc.MoveFolder(ctx, b.ID, &a.ID))
	got, err = svc.store.GetFolder(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, *got.ParentFolderID)
}

func TestDeleteFolderCascade(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	root := mustFolder(t, svc, "Project A", "ACC-1", nil)
	contracts := mustFolder(t, svc, "Contracts", "ACC-1", &root.ID)
	archive := mustFolder(t, svc, "Archive", "ACC-1", &contracts.ID)
	_, err := svc.CreateFileRecord(ctx, "msa.pdf", contracts.ID, "blob-msa", "tester")
	require.NoError(t, err)
	_, err = svc.CreateFileRecord(ctx, "old.pdf", archive.ID, "blob-old", "tester")
	require.NoError(t, err)

	// Pre-delete count must match what the cascade actually removes,
	// excluding the deleted folder itself.
	count, err := svc.GetFolderContentsCount(ctx, root.ID)
	require.NoError(t, err)

	removed, err := svc.DeleteFolder(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, count+1, removed)
	assert.Equal(t, 5, removed)

	for _, id := range []models.FolderID{root.ID, contracts.ID, archive.ID} {
		got, err := svc.store.GetFolder(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	nodes, err := svc.ListContents(ctx, "ACC-1", nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestDeleteFolderScenario(t *testing.T) {
	// Create "Project A" under ACC-1, "Contracts" under it, "msa.pdf" under
	// that, delete the root, and expect an empty anchor listing.
	svc := newTestService(t)
	ctx := context.Background()

	project := mustFolder(t, svc, "Project A", "ACC-1", nil)
	contracts := mustFolder(t, svc, "Contracts", "ACC-1", &project.ID)
	_, err := svc.CreateFileRecord(ctx, "msa.pdf", contracts.ID, "blob-msa", "tester")
	require.NoError(t, err)

	_, err = svc.DeleteFolder(ctx, project.ID)
	require.NoError(t, err)

	nodes, err := svc.ListContents(ctx, "ACC-1", nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestFileMoveAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := mustFolder(t, svc, "A", "ACC-1", nil)
	b := mustFolder(t, svc, "B", "ACC-1", nil)
	file, err := svc.CreateFileRecord(ctx, "doc.pdf", a.ID, "blob-doc", "tester")
	require.NoError(t, err)

	require.NoError(t, svc.MoveFile(ctx, file.ID, b.ID))
	got, err := svc.store.GetFile(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.FolderID)

	require.NoError(t, svc.DeleteFile(ctx, file.ID))
	got, err = svc.store.GetFile(ctx, file.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = svc.DeleteFile(ctx, file.ID)
	assert.Equal(t, ErrorNotFound, KindOf(err))
}

func TestSearchFolders(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inv := mustFolder(t, svc, "Invoices", "ACC-1", nil)
	mustFolder(t, svc, "Invoices 2024", "ACC-2", &inv.ID)
	mustFolder(t, svc, "Contracts", "ACC-1", nil)

	matches, err := svc.SearchFolders(ctx, "invoice")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Invoices", matches[0].Name)
	assert.Equal(t, "Invoices 2024", matches[1].Name)
	// Matches span anchors and carry breadcrumbs.
	assert.Equal(t, "ACC-2", matches[1].AnchorID)
	assert.Equal(t, "Invoices / Invoices 2024", matches[1].Path)

	matches, err = svc.SearchFolders(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = svc.SearchFolders(ctx, "100%_match")
	require.NoError(t, err)
	assert.Empty(t, matches, "LIKE wildcards in the term must be literal")
}

func TestCrossRecordLinkage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Parent record P owns a root folder; a child record's hierarchy hangs
	// beneath it.
	parentRoot := mustFolder(t, svc, "Parent Projects", "P", nil)
	childRoot := mustFolder(t, svc, "Child Site", "CHILD", &parentRoot.ID)
	nested := mustFolder(t, svc, "Drawings", "CHILD", &childRoot.ID)

	link, err := svc.GetParentFolderInfo(ctx, "CHILD")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, parentRoot.ID, link.FolderID)
	assert.Equal(t, "Parent Projects", link.FolderName)
	assert.Equal(t, models.AnchorID("P"), link.AnchorID)

	// Inside the child hierarchy the boundary is only reported from nodes
	// whose chain actually crosses it.
	link, err = svc.GetFolderParentInfo(ctx, nested.ID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, parentRoot.ID, link.FolderID)

	link, err = svc.GetFolderParentInfo(ctx, parentRoot.ID)
	require.NoError(t, err)
	assert.Nil(t, link)

	// A standalone hierarchy has no cross-record parent.
	standalone := mustFolder(t, svc, "Standalone", "LONER", nil)
	link, err = svc.GetParentFolderInfo(ctx, "LONER")
	require.NoError(t, err)
	assert.Nil(t, link)
	link, err = svc.GetFolderParentInfo(ctx, standalone.ID)
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestAcyclicityAfterMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := mustFolder(t, svc, "A", "ACC-1", nil)
	b := mustFolder(t, svc, "B", "ACC-1", &a.ID)
	c := mustFolder(t, svc, "C", "ACC-1", &b.ID)
	require.NoError(t, svc.MoveFolder(ctx, c.ID, &a.ID))
	_, err := svc.DeleteFolder(ctx, b.ID)
	require.NoError(t, err)

	// Every surviving folder's parent chain terminates at a root.
	for _, id := range []models.FolderID{a.ID, c.ID} {
		chain, err := svc.folderWalker().AncestorChain(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, a.ID, chain[len(chain)-1])
	}
}
