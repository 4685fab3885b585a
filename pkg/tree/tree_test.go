package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapTree backs a Walker with plain maps so the engine can be exercised
// without a store.
type mapTree struct {
	parents  map[string]string
	children map[string][]string
}

func newMapTree(parents map[string]string) *mapTree {
	t := &mapTree{parents: parents, children: map[string][]string{}}
	for child, parent := range parents {
		t.children[parent] = append(t.children[parent], child)
	}
	return t
}

func (t *mapTree) walker(maxDepth int) *Walker[string] {
	parent := func(_ context.Context, id string) (string, bool, error) {
		p, ok := t.parents[id]
		return p, ok, nil
	}
	children := func(_ context.Context, id string) ([]string, error) {
		return t.children[id], nil
	}
	return NewWalker(parent, children, maxDepth)
}

func TestIsDescendant(t *testing.T) {
	// root -> a -> b -> c, root -> d
	w := newMapTree(map[string]string{
		"a": "root",
		"b": "a",
		"c": "b",
		"d": "root",
	}).walker(0)
	ctx := context.Background()

	got, err := w.IsDescendant(ctx, "root", "c")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = w.IsDescendant(ctx, "a", "c")
	require.NoError(t, err)
	assert.True(t, got)

	// A node counts as its own descendant for move validation.
	got, err = w.IsDescendant(ctx, "b", "b")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = w.IsDescendant(ctx, "d", "c")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = w.IsDescendant(ctx, "c", "a")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsDescendantCorruptedCycle(t *testing.T) {
	// a -> b -> a: pre-existing corruption, must not loop forever.
	w := newMapTree(map[string]string{
		"a": "b",
		"b": "a",
	}).walker(10)

	_, err := w.IsDescendant(context.Background(), "x", "a")
	require.ErrorIs(t, err, ErrDepthExceeded)
}

func TestDescendantsOrder(t *testing.T) {
	// root -> {a, d}, a -> {b}, b -> {c}
	w := newMapTree(map[string]string{
		"a": "root",
		"b": "a",
		"c": "b",
		"d": "root",
	}).walker(0)

	got, err := w.Descendants(context.Background(), "root")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, got)

	// Parents always precede their children.
	pos := map[string]int{}
	for i, id := range got {
		pos[id] = i
	}
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
}

func TestDescendantsEmpty(t *testing.T) {
	w := newMapTree(map[string]string{"a": "root"}).walker(0)

	got, err := w.Descendants(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescendantsCycle(t *testing.T) {
	tr := newMapTree(map[string]string{"a": "root"})
	// Corrupt the child index so root and a point at each other.
	tr.children["a"] = []string{"root"}
	w := tr.walker(5)

	_, err := w.Descendants(context.Background(), "root")
	require.ErrorIs(t, err, ErrDepthExceeded)
}

func TestAncestorChain(t *testing.T) {
	w := newMapTree(map[string]string{
		"a": "root",
		"b": "a",
	}).walker(0)

	got, err := w.AncestorChain(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "root"}, got)

	got, err = w.AncestorChain(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, []string{"root"}, got)
}

func TestAncestorChainDepthBound(t *testing.T) {
	w := newMapTree(map[string]string{
		"a": "b",
		"b": "a",
	}).walker(3)

	_, err := w.AncestorChain(context.Background(), "a")
	require.ErrorIs(t, err, ErrDepthExceeded)
}
