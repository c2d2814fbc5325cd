// Package avltree provides a generic, self-balancing AVL binary search tree.
//
// The tree embeds bst.Tree, storing each node's height in the node metadata.
// After every insertion and deletion a single bottom-up retrace walks from the
// deepest changed node to the root, recomputing stored heights and rotating
// wherever the balance factor leaves {-1, 0, +1}. The same retrace serves both
// operations: it decides between a single and a double rotation by comparing
// subtree heights rather than by the sign of the balance factor alone, which
// is what deletion requires and is equally correct for insertion.
//
// # Usage Example
//
//	tree := avltree.New[int, string](func(a, b int) bool { return a < b })
//	tree.Insert(10, "ten")
//	tree.Insert(20, "twenty")
//	v, found := tree.Get(10)
//
// # Limitations
//
//   - Not Thread-Safe – requires external synchronization for concurrent use.
//   - No Duplicate Keys – inserting an existing key is a rejected no-op.
package avltree

import (
	"fmt"

	"github.com/treewerk/sortedtrees/bst"
)

// Tree is an AVL tree: a bst.Tree whose nodes carry their height as metadata
// and which keeps every node's balance factor within {-1, 0, +1}.
//
// Height convention: a leaf has height 0 and the sentinel reports -1.
type Tree[K, V any] struct {
	*bst.Tree[K, V, int]     // underlying BST structure
	size                 int // total number of nodes
}

// New creates a new empty AVL tree ordered by less.
func New[K, V any](less bst.LessFunc[K]) *Tree[K, V] {
	t := &Tree[K, V]{
		Tree: bst.New[K, V, int](less),
	}
	// rotations pivot two nodes whose subtrees changed; refresh their heights
	t.Tree.SetRotateHook(func(x, z *bst.Node[K, V, int]) {
		t.refreshHeight(x)
		t.refreshHeight(z)
	})
	return t
}

// height reads n's stored height, -1 for the sentinel.
func (t *Tree[K, V]) height(n *bst.Node[K, V, int]) int {
	if t.IsNil(n) {
		return -1
	}
	return t.Metadata(n)
}

// refreshHeight recomputes n's stored height from its children.
func (t *Tree[K, V]) refreshHeight(n *bst.Node[K, V, int]) {
	if t.IsNil(n) {
		return
	}
	t.SetMetadata(n, 1+max(t.height(t.Left(n)), t.height(t.Right(n))))
}

// balanceFactor is right height minus left height.
func (t *Tree[K, V]) balanceFactor(n *bst.Node[K, V, int]) int {
	return t.height(t.Right(n)) - t.height(t.Left(n))
}

// retrace walks from p up to the root, recomputing stored heights and
// repairing any node whose balance factor left {-1, 0, +1}.
//
// At an unbalanced node the rotation direction d is the one opposite the
// heavier side. Whether a single rotation suffices depends on the heavier
// child's own children: when its outer subtree is at least as tall as its
// inner one a single rotation restores balance, otherwise the inner grandchild
// must be lifted with a double rotation. After a repair the walk continues
// from the new subtree root's parent.
func (t *Tree[K, V]) retrace(p *bst.Node[K, V, int]) {
	for !t.IsNil(p) {
		t.refreshHeight(p)

		if bf := t.balanceFactor(p); bf > 1 || bf < -1 {
			d := bst.DirRight
			if bf > 0 {
				// right-heavy: rotate left
				d = bst.DirLeft
			}

			heavy := t.Child(p, d.Opposite())
			outer := t.height(t.Child(heavy, d.Opposite()))
			inner := t.height(t.Child(heavy, d))

			if outer >= inner {
				p = t.Rotate(p, d)
			} else {
				p = t.DoubleRotate(p, d)
			}
		}

		p = t.Parent(p)
	}
}

// Insert adds a new key-value pair to the tree, rebalancing as needed.
//
// Returns:
//   - (*Node, true) if a new node was inserted.
//   - (*Node, false) if the key already existed; the stored value is unchanged.
func (t *Tree[K, V]) Insert(key K, value V) (*bst.Node[K, V, int], bool) {
	n, inserted := t.Tree.Insert(key, value)
	if !inserted {
		return n, false
	}

	// the fresh node's zero metadata is already the correct leaf height
	t.retrace(n)

	t.size++
	return n, true
}

// Remove deletes the node with the given key, rebalancing as needed, and
// returns the removed value. The zero value and false are returned when the
// key is absent.
func (t *Tree[K, V]) Remove(key K) (V, bool) {
	n, found := t.Search(key)
	if !found {
		var zero V
		return zero, false
	}
	value := t.Value(n)

	_, retraceEntry, _ := t.Tree.Delete(n)
	t.retrace(retraceEntry)

	t.size--
	return value, true
}

// Delete removes the given node n from the tree, rebalancing as needed.
// It reports whether a node was removed.
//
// ⚠️ Important: n must belong to this tree; see bst.Tree.Contains.
func (t *Tree[K, V]) Delete(n *bst.Node[K, V, int]) bool {
	_, retraceEntry, ok := t.Tree.Delete(n)
	if !ok {
		return false
	}
	t.retrace(retraceEntry)
	t.size--
	return true
}

// Height returns the stored height of the whole tree: -1 when empty, 0 for a
// single node.
func (t *Tree[K, V]) Height() int {
	return t.height(t.Root())
}

// Size returns the total number of nodes in the tree.
func (t *Tree[K, V]) Size() int {
	return t.size
}

// IsTreeValid verifies the underlying BST structure plus the AVL invariants:
// every node's stored height equals 1 + max of its child heights, and every
// balance factor lies within {-1, 0, +1}.
//
// Returns nil if the tree is valid, or an error describing the first detected
// violation.
func (t *Tree[K, V]) IsTreeValid() error {
	if err := t.Tree.IsTreeValid(); err != nil {
		return fmt.Errorf("underlying BST is invalid: %v", err)
	}
	_, err := t.checkSubtree(t.Root())
	return err
}

// checkSubtree recomputes heights bottom-up, comparing against stored values.
func (t *Tree[K, V]) checkSubtree(n *bst.Node[K, V, int]) (int, error) {
	if t.IsNil(n) {
		return -1, nil
	}

	lh, err := t.checkSubtree(t.Left(n))
	if err != nil {
		return 0, err
	}
	rh, err := t.checkSubtree(t.Right(n))
	if err != nil {
		return 0, err
	}

	h := 1 + max(lh, rh)
	if stored := t.Metadata(n); stored != h {
		return 0, fmt.Errorf("node %v stored height %d but computed height %d", t.Key(n), stored, h)
	}
	if bf := rh - lh; bf > 1 || bf < -1 {
		return 0, fmt.Errorf("node %v has balance factor %d", t.Key(n), rh-lh)
	}
	return h, nil
}
