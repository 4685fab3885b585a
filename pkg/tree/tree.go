// Package tree implements the integrity engine for self-referential
// hierarchies stored as flat parent-id tables.
//
// The engine is deliberately storage-agnostic: a [Walker] is parameterized
// over two lookup functions (parent-of and children-of) so the same traversal
// logic serves both the real folder tree and the template tree. All
// operations are read-only and safe for concurrent use; every walk re-reads
// the store through the lookups rather than caching structure.
//
// Every traversal is bounded by the walker's depth limit. A chain longer
// than the limit indicates a cycle already present in storage, and the walk
// fails with [ErrDepthExceeded] instead of looping.
package tree

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds parent-chain walks. Trees deeper than this are
// treated as corrupted. The bound is configuration, not a property of the
// data model.
const DefaultMaxDepth = 100

// ErrDepthExceeded reports a parent chain longer than the walker's depth
// bound, which signals a cycle or corruption already present in storage.
var ErrDepthExceeded = errors.New("traversal exceeded depth bound")

// ParentFunc resolves the parent of a node. ok is false when the node has no
// parent (it is a root) or does not exist.
type ParentFunc[ID comparable] func(ctx context.Context, id ID) (parent ID, ok bool, err error)

// ChildrenFunc lists the direct children of a node.
type ChildrenFunc[ID comparable] func(ctx context.Context, id ID) ([]ID, error)

// Walker performs read-only structural queries over one hierarchy.
type Walker[ID comparable] struct {
	parent   ParentFunc[ID]
	children ChildrenFunc[ID]
	maxDepth int
}

// NewWalker creates a walker over the hierarchy described by the two lookup
// functions. maxDepth <= 0 selects [DefaultMaxDepth].
func NewWalker[ID comparable](parent ParentFunc[ID], children ChildrenFunc[ID], maxDepth int) *Walker[ID] {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Walker[ID]{parent: parent, children: children, maxDepth: maxDepth}
}

// IsDescendant reports whether node equals candidateAncestor or has it
// anywhere on its parent chain. Move operations use this to reject
// re-parenting that would make a node its own descendant.
func (w *Walker[ID]) IsDescendant(ctx context.Context, candidateAncestor, node ID) (bool, error) {
	if node == candidateAncestor {
		return true, nil
	}
	current := node
	for depth := 0; depth < w.maxDepth; depth++ {
		parent, ok, err := w.parent(ctx, current)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if parent == candidateAncestor {
			return true, nil
		}
		current = parent
	}
	return false, fmt.Errorf("ancestor walk from %v: %w", node, ErrDepthExceeded)
}

// Descendants enumerates every node transitively parented under root,
// excluding root itself. The walk is breadth-first, so parents always appear
// before their children in the result; cascade deletes rely on that order
// being reversible.
func (w *Walker[ID]) Descendants(ctx context.Context, root ID) ([]ID, error) {
	var result []ID
	seen := map[ID]bool{root: true}
	frontier := []ID{root}
	for depth := 0; depth < w.maxDepth && len(frontier) > 0; depth++ {
		var next []ID
		for _, id := range frontier {
			children, err := w.children(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				if seen[child] {
					// A revisited node means a cycle below root.
					return nil, fmt.Errorf("descendant walk from %v: %w", root, ErrDepthExceeded)
				}
				seen[child] = true
				result = append(result, child)
				next = append(next, child)
			}
		}
		frontier = next
	}
	if len(frontier) > 0 {
		return nil, fmt.Errorf("descendant walk from %v: %w", root, ErrDepthExceeded)
	}
	return result, nil
}

// AncestorChain returns the sequence from node up to its root, starting with
// node itself. Breadcrumb paths and cross-record boundary detection are built
// from this.
func (w *Walker[ID]) AncestorChain(ctx context.Context, node ID) ([]ID, error) {
	chain := []ID{node}
	current := node
	for depth := 0; depth < w.maxDepth; depth++ {
		parent, ok, err := w.parent(ctx, current)
		if err != nil {
			return nil, err
		}
		if !ok {
			return chain, nil
		}
		chain = append(chain, parent)
		current = parent
	}
	return nil, fmt.Errorf("ancestor walk from %v: %w", node, ErrDepthExceeded)
}
