package wsmfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

func mustTemplateTree(t *testing.T, svc *Service) (models.TemplateSetID, map[string]models.TemplateFolderID) {
	t.Helper()
	ctx := context.Background()

	set, err := svc.CreateTemplateSet(ctx, "Project Layout")
	require.NoError(t, err)

	// Root{A{X}, B}
	ids := map[string]models.TemplateFolderID{}
	a, err := svc.CreateTemplateFolder(ctx, set.ID, "A", nil)
	require.NoError(t, err)
	ids["A"] = a.ID
	b, err := svc.CreateTemplateFolder(ctx, set.ID, "B", nil)
	require.NoError(t, err)
	ids["B"] = b.ID
	x, err := svc.CreateTemplateFolder(ctx, set.ID, "X", &a.ID)
	require.NoError(t, err)
	ids["X"] = x.ID

	return set.ID, ids
}

func TestTemplateSetLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setID, _ := mustTemplateTree(t, svc)

	sets, err := svc.ListTemplateSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Project Layout", sets[0].Name)

	renamed, err := svc.RenameTemplateSet(ctx, setID, "Standard Layout")
	require.NoError(t, err)
	assert.Equal(t, "Standard Layout", renamed.Name)

	removed, err := svc.DeleteTemplateSet(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	sets, err = svc.ListTemplateSets(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestTemplateFolderMoveRules(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setID, ids := mustTemplateTree(t, svc)

	err := svc.MoveTemplateFolder(ctx, ids["A"], ptr(ids["A"]))
	assert.Equal(t, ErrorCycle, KindOf(err))

	err = svc.MoveTemplateFolder(ctx, ids["A"], ptr(ids["X"]))
	assert.Equal(t, ErrorCycle, KindOf(err))

	// Moving across template sets is rejected.
	other, err := svc.CreateTemplateSet(ctx, "Other")
	require.NoError(t, err)
	foreign, err := svc.CreateTemplateFolder(ctx, other.ID, "Elsewhere", nil)
	require.NoError(t, err)
	err = svc.MoveTemplateFolder(ctx, ids["A"], &foreign.ID)
	assert.Equal(t, ErrorValidation, KindOf(err))

	// B under A is legal.
	require.NoError(t, svc.MoveTemplateFolder(ctx, ids["B"], ptr(ids["A"])))
	roots, err := svc.ListTemplateTree(ctx, setID)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "A", roots[0].Name)
}

func TestTemplateMoveTargets(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, ids := mustTemplateTree(t, svc)

	// A may not move under itself or X; B is the only legal destination.
	targets, err := svc.GetMoveTargets(ctx, ids["A"])
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, ids["B"], targets[0].ID)

	// X may move anywhere except under itself.
	targets, err = svc.GetMoveTargets(ctx, ids["X"])
	require.NoError(t, err)
	assert.Len(t, targets, 2)
}

func TestTemplateChildCountAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, ids := mustTemplateTree(t, svc)

	count, err := svc.GetTemplateChildCount(ctx, ids["A"])
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	removed, err := svc.DeleteTemplateFolder(ctx, ids["A"])
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	got, err := svc.store.GetTemplateFolder(ctx, ids["X"])
	require.NoError(t, err)
	assert.Nil(t, got)
	gotB, err := svc.store.GetTemplateFolder(ctx, ids["B"])
	require.NoError(t, err)
	require.NotNil(t, gotB)
}

func TestApplyTemplateShape(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setID, _ := mustTemplateTree(t, svc)

	result, err := svc.ApplyTemplate(ctx, setID, "ACC-9", nil, "Demo", "automation")
	require.NoError(t, err)
	// One real folder per template folder, plus the synthetic root.
	assert.Equal(t, 4, result.FoldersCreated)

	// Demo{A{X}, B} with sibling name ordering preserved.
	roots, err := svc.ListContents(ctx, "ACC-9", nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Demo", roots[0].Label)
	assert.Equal(t, result.RootFolderID.String(), roots[0].ID)

	level1, err := svc.ListContents(ctx, "ACC-9", &result.RootFolderID)
	require.NoError(t, err)
	require.Len(t, level1, 2)
	assert.Equal(t, "A", level1[0].Label)
	assert.Equal(t, "B", level1[1].Label)

	aID, err := models.ParseFolderID(level1[0].ID)
	require.NoError(t, err)
	level2, err := svc.ListContents(ctx, "ACC-9", &aID)
	require.NoError(t, err)
	require.Len(t, level2, 1)
	assert.Equal(t, "X", level2[0].Label)
}

func TestApplyTemplateCrossRecordLink(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setID, _ := mustTemplateTree(t, svc)
	parentRoot := mustFolder(t, svc, "Parent Projects", "P", nil)

	parentAnchor := models.AnchorID("P")
	result, err := svc.ApplyTemplate(ctx, setID, "CHILD", &parentAnchor, "Child Site", "automation")
	require.NoError(t, err)

	// The synthetic root hangs under the parent record's root folder.
	link, err := svc.GetParentFolderInfo(ctx, "CHILD")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, parentRoot.ID, link.FolderID)

	link, err = svc.GetFolderParentInfo(ctx, result.RootFolderID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, parentRoot.ID, link.FolderID)
}

func TestApplyTemplateMissingParentAnchor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setID, _ := mustTemplateTree(t, svc)
	empty := models.AnchorID("NOBODY-HOME")

	_, err := svc.ApplyTemplate(ctx, setID, "CHILD", &empty, "Child Site", "automation")
	assert.Equal(t, ErrorNotFound, KindOf(err))

	// Nothing was created under the target anchor.
	nodes, err := svc.ListContents(ctx, "CHILD", nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

// The clone walk is intentionally not one transaction: a mid-walk failure
// leaves the partial subtree behind and hands back the synthetic root so the
// caller can cascade-delete it. Whether that should instead roll back
// automatically is left open; this test pins the current contract.
func TestApplyTemplatePartialFailureLeavesRoot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	set, err := svc.CreateTemplateSet(ctx, "Sabotaged")
	require.NoError(t, err)
	tf := &models.TemplateFolder{Name: "bad/name", TemplateSetID: set.ID}
	require.NoError(t, svc.store.CreateTemplateFolder(ctx, tf))

	result, err := svc.ApplyTemplate(ctx, set.ID, "ACC-9", nil, "Demo", "automation")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.FoldersCreated)

	// The partial root exists and can be cleaned up by the caller.
	removed, err := svc.DeleteFolder(ctx, result.RootFolderID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func ptr[T any](v T) *T { return &v }
