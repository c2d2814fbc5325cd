// Package rbtree provides a generic, self-balancing red-black binary search
// tree.
//
// The tree embeds bst.Tree, storing each node's colour in the node metadata,
// and maintains the classical red-black invariants:
//   - the root is black;
//   - no red node has a red child;
//   - every path from the root to a missing child passes the same number of
//     black nodes (empty links count as black).
//
// Together these keep the tree approximately balanced, giving O(log n)
// insertions, deletions and lookups. Repairs are written once and mirrored
// through bst.Direction rather than as duplicated left/right case bodies.
//
// # Usage Example
//
//	tree := rbtree.New[int, string](func(a, b int) bool { return a < b })
//	tree.Insert(10, "ten")
//	tree.Insert(20, "twenty")
//	v, found := tree.Get(10)
//
// # Limitations
//
//   - Not Thread-Safe – requires external synchronization for concurrent use.
//   - No Duplicate Keys – inserting an existing key is a rejected no-op.
package rbtree

import (
	"fmt"

	"github.com/treewerk/sortedtrees/bst"
)

// Color represents the colour of a node in a red-black tree.
type Color bool

const (
	Red   Color = false // red-coloured node
	Black Color = true  // black-coloured node
)

// String returns a Unicode representation of the node colour: "🟥" for red,
// "⬛" for black.
func (c Color) String() string {
	if c == Black {
		return "⬛"
	}
	return "🟥"
}

// Tree is a red-black tree: a bst.Tree whose nodes carry a Color as metadata.
type Tree[K, V any] struct {
	*bst.Tree[K, V, Color]     // underlying BST structure
	size                   int // total number of nodes
}

// New creates a new empty red-black tree ordered by less. The sentinel nil
// node is initialized black, as every missing child counts black.
func New[K, V any](less bst.LessFunc[K]) *Tree[K, V] {
	t := &Tree[K, V]{
		Tree: bst.New[K, V, Color](less),
	}
	t.Tree.MustSetMetadata(t.Sentinel(), Black)
	return t
}

// isBlack returns true if the passed node is black or nil (missing children
// are considered black).
func (t *Tree[K, V]) isBlack(n *bst.Node[K, V, Color]) bool {
	return t.IsNil(n) || t.Metadata(n) == Black
}

// isRed returns true if the passed node is a real node coloured red.
func (t *Tree[K, V]) isRed(n *bst.Node[K, V, Color]) bool {
	return !t.IsNil(n) && t.Metadata(n) == Red
}

// setColor sets the colour of node n, if n is not the sentinel.
func (t *Tree[K, V]) setColor(n *bst.Node[K, V, Color], c Color) {
	if !t.IsNil(n) {
		t.Tree.SetMetadata(n, c)
	}
}

// Insert adds a new key-value pair to the tree while maintaining the
// red-black invariants.
//
// The new node is coloured red and the tree then undergoes recolouring and
// rotation as needed; inserting a key that is already present is a rejected
// no-op.
//
// Returns:
//   - (*Node, true) if a new node was inserted.
//   - (*Node, false) if the key already existed; the stored value is unchanged.
func (t *Tree[K, V]) Insert(key K, value V) (*bst.Node[K, V, Color], bool) {
	n, inserted := t.Tree.Insert(key, value)
	if !inserted {
		return n, false
	}
	t.setColor(n, Red)
	t.insertFixup(n)
	t.size++
	return n, true
}

// insertFixup restores the red-black invariants after hooking in the red node
// x.
//
// A black parent needs no repair. Under a red parent the repair depends on
// the uncle: a red uncle is handled by repainting parent and uncle black and
// the grandparent red, pushing the problem two levels up; a black uncle is
// terminal and resolved at the grandparent with a single rotation (node and
// parent on the same side) or a double rotation (node on the inner side),
// after which the subtree root is black and its displaced child red. The root
// is forced black at the end.
func (t *Tree[K, V]) insertFixup(x *bst.Node[K, V, Color]) {
	for {
		p := t.Parent(x)
		if t.IsNil(p) {
			t.setColor(x, Black)
			return
		}
		if t.isBlack(p) {
			return
		}

		// p is red, so it cannot be the root and g is a real node
		g := t.Parent(p)
		if t.IsNil(g) {
			t.setColor(p, Black)
			return
		}

		if u := t.Sibling(p); t.isRed(u) {
			t.setColor(p, Black)
			t.setColor(u, Black)
			t.setColor(g, Red)
			x = g
			continue
		}

		// uncle is black
		pd := t.DirectionOf(p)
		xd := t.DirectionOf(x)

		var subtreeRoot *bst.Node[K, V, Color]
		otherDir := xd
		if pd == xd {
			subtreeRoot = t.Rotate(g, pd.Opposite())
			otherDir = xd.Opposite()
		} else {
			subtreeRoot = t.DoubleRotate(g, pd.Opposite())
		}

		t.setColor(subtreeRoot, Black)
		t.setColor(t.Child(subtreeRoot, otherDir), Red)
		return
	}
}

// Remove deletes the node with the given key while maintaining the red-black
// invariants, and returns the removed value. The zero value and false are
// returned when the key is absent.
func (t *Tree[K, V]) Remove(key K) (V, bool) {
	z, found := t.Search(key)
	if !found {
		var zero V
		return zero, false
	}
	value := t.Value(z)
	t.Delete(z)
	return value, true
}

// Delete removes the given node z from the tree while maintaining the
// red-black invariants. It reports whether a node was removed.
//
// A node with two children swaps payload with its in-order successor so that
// the physically unlinked position has at most one child. When the unlinked
// node was black the subtree beneath it is one black short and deleteFixup
// repairs the deficit.
//
// ⚠️ Important: z must belong to this tree; see bst.Tree.Contains.
func (t *Tree[K, V]) Delete(z *bst.Node[K, V, Color]) bool {
	if t.IsNil(z) {
		return false
	}

	// y is the node that physically leaves the tree
	y := z
	if t.IsFull(z) {
		y = t.Successor(z)
	}

	// x replaces y; it may be the sentinel, which borrows y's parent link for
	// the duration of the fixup
	x := t.Right(y)
	if !t.IsNil(t.Left(y)) {
		x = t.Left(y)
	}

	t.Tree.SetParent(x, t.Parent(y))
	if t.IsNil(t.Parent(y)) {
		t.SetRoot(x)
	} else if y == t.Left(t.Parent(y)) {
		t.Tree.SetLeft(t.Parent(y), x)
	} else {
		t.Tree.SetRight(t.Parent(y), x)
	}

	if y != z {
		// move y's payload into z's position; colours stay put
		t.Tree.SetKey(z, t.Key(y))
		t.Tree.SetValue(z, t.Value(y))
	}

	if t.isBlack(y) {
		if t.isRed(x) {
			// a red replacement absorbs the missing black
			t.setColor(x, Black)
		} else if x != t.Root() {
			t.fixDeficit(x)
		}
	}

	t.resetSentinel()
	t.size--
	return true
}

// fixDeficit repairs a one-black deficit at n's position. n is black (or the
// sentinel) and not the root.
//
// With the deficit on side dir of parent p, the sibling s, the close nephew c
// (s's child nearer the deficit) and the distant nephew d drive four cases:
//
//  1. s red: rotate p toward the deficit and recolour, then re-enter at the
//     same position, now under a black sibling.
//  2. s, c, d all black: repaint s red; a red p absorbs the deficit by
//     turning black, otherwise the deficit moves up to p.
//  3. c red, d black: lift c with a double rotation; c takes p's old colour
//     and p turns black.
//  4. d red: rotate p toward the deficit; s takes p's old colour, d and p
//     turn black.
func (t *Tree[K, V]) fixDeficit(n *bst.Node[K, V, Color]) {
	p := t.Parent(n)
	if t.IsNil(p) {
		return
	}

	dir := t.DirectionOf(n)
	s := t.Child(p, dir.Opposite())
	if t.IsNil(s) {
		t.fixDeficit(p)
		return
	}

	c := t.Child(s, dir)            // close nephew
	d := t.Child(s, dir.Opposite()) // distant nephew

	if t.isRed(s) {
		// p, c and d must be black
		t.Rotate(p, dir)
		t.setColor(p, Red)
		t.setColor(s, Black)
		t.fixDeficit(n)
		return
	}

	switch {
	case t.isBlack(c) && t.isBlack(d):
		t.setColor(s, Red)
		if t.isBlack(p) {
			if p != t.Root() {
				t.fixDeficit(p)
			}
		} else {
			t.setColor(p, Black)
		}

	case t.isRed(c) && t.isBlack(d):
		pColor := t.Metadata(p)
		t.DoubleRotate(p, dir)
		t.setColor(c, pColor)
		t.setColor(p, Black)

	default: // d is red
		pColor := t.Metadata(p)
		t.Rotate(p, dir)
		t.setColor(s, pColor)
		t.setColor(d, Black)
		t.setColor(p, Black)
	}
}

// resetSentinel re-initializes the sentinel nil node after a deletion.
//
// Deletion temporarily lends the sentinel a parent link so that the fixup can
// walk upward from an empty position; this restores the sentinel to having
// itself as parent, no children, and black colour.
func (t *Tree[K, V]) resetSentinel() {
	t.Tree.SetLeft(t.Sentinel(), nil)
	t.Tree.SetRight(t.Sentinel(), nil)
	t.Tree.SetParent(t.Sentinel(), t.Sentinel())
	t.Tree.MustSetMetadata(t.Sentinel(), Black)
}

// Size returns the total number of nodes in the tree.
func (t *Tree[K, V]) Size() int {
	return t.size
}

// IsTreeValid verifies the underlying BST structure plus the red-black
// invariants: black root, black sentinel, no red node with a red child, and
// an equal count of black nodes on every path from the root to a missing
// child.
//
// Returns nil if the tree is valid, or an error describing the first detected
// violation.
func (t *Tree[K, V]) IsTreeValid() error {
	if err := t.Tree.IsTreeValid(); err != nil {
		return fmt.Errorf("underlying BST is invalid: %v", err)
	}

	if !t.isBlack(t.Root()) {
		return fmt.Errorf("root node is not black")
	}
	if t.Metadata(t.Sentinel()) != Black {
		return fmt.Errorf("sentinel nil node is not black")
	}

	_, err := t.blackHeight(t.Root())
	return err
}

// blackHeight computes the black-height of the subtree rooted at n, checking
// the no-red-red rule and the equal-black-count rule on the way. Missing
// children count one black.
func (t *Tree[K, V]) blackHeight(n *bst.Node[K, V, Color]) (int, error) {
	if t.IsNil(n) {
		return 1, nil
	}

	if t.isRed(n) {
		if t.isRed(t.Left(n)) {
			return 0, fmt.Errorf("node %v is red and has red left child", t.Key(n))
		}
		if t.isRed(t.Right(n)) {
			return 0, fmt.Errorf("node %v is red and has red right child", t.Key(n))
		}
	}

	lh, err := t.blackHeight(t.Left(n))
	if err != nil {
		return 0, err
	}
	rh, err := t.blackHeight(t.Right(n))
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("node %v has black count mismatch: left %d, right %d", t.Key(n), lh, rh)
	}

	if t.isBlack(n) {
		lh++
	}
	return lh, nil
}
