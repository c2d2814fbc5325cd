// Package treap provides a generic randomised binary search tree.
//
// The tree embeds bst.Tree, storing each node's weight in the node metadata.
// The structure is the unique tree that is simultaneously a BST on keys and a
// max-heap on weights; with weights drawn from a uniform source the expected
// height is O(log n) regardless of key order.
//
// All mutations are built from two algebraic primitives:
//   - split(t, key): partition t into the nodes with keys ≤ key and the rest;
//   - join(l, r): merge two trees where every key of l precedes every key of
//     r, promoting the heavier root.
//
// Weights come from an injected WeightFunc so that tests (and callers with
// their own randomness requirements) can supply a deterministic source;
// NewWithRandomWeights wires in math/rand/v2 for the common case.
//
// A treap keyed on anything with throwaway values also serves as a max-heap
// on its weights; see Heap.
//
// # Limitations
//
//   - Not Thread-Safe – requires external synchronization for concurrent use.
//   - No Duplicate Keys – inserting an existing key is a rejected no-op.
package treap

import (
	"fmt"
	"math/rand/v2"

	"github.com/treewerk/sortedtrees/bst"
)

// WeightFunc supplies the weight for each newly inserted node. It should draw
// from a uniform distribution over W for the expected-height guarantee to
// hold.
type WeightFunc[W any] func() W

// Item is one (key, value, weight) triple for BulkLoad.
type Item[K, V, W any] struct {
	Key    K
	Value  V
	Weight W
}

// Tree is a treap: a bst.Tree whose nodes carry a weight as metadata and
// which keeps every parent's weight greater than or equal to its children's.
type Tree[K, V, W any] struct {
	*bst.Tree[K, V, W]     // underlying BST structure
	wless  bst.LessFunc[W] // weight ordering
	weight WeightFunc[W]   // weight source for Insert
	size   int             // total number of nodes
}

// New creates a new empty treap with keys ordered by less, weights ordered by
// wless, and insertion weights drawn from weight.
func New[K, V, W any](less bst.LessFunc[K], wless bst.LessFunc[W], weight WeightFunc[W]) *Tree[K, V, W] {
	return &Tree[K, V, W]{
		Tree:   bst.New[K, V, W](less),
		wless:  wless,
		weight: weight,
	}
}

// NewWithRandomWeights creates a new empty treap with uint64 weights drawn
// from math/rand/v2's shared source.
func NewWithRandomWeights[K, V any](less bst.LessFunc[K]) *Tree[K, V, uint64] {
	return New[K, V, uint64](
		less,
		func(a, b uint64) bool { return a < b },
		rand.Uint64,
	)
}

// weightLess compares node weights.
func (t *Tree[K, V, W]) weightLess(a, b *bst.Node[K, V, W]) bool {
	return t.wless(t.Metadata(a), t.Metadata(b))
}

// resetRoot installs n as the tree root and clears its parent link.
func (t *Tree[K, V, W]) resetRoot(n *bst.Node[K, V, W]) {
	t.SetRoot(n)
	if !t.IsNil(n) {
		t.SetParent(n, t.Sentinel())
	}
}

// split partitions the subtree rooted at n around key: the left result holds
// every node with key ≤ key, the right result the rest. Both results are
// roots with stale parent links; callers re-anchor them through join or
// resetRoot.
func (t *Tree[K, V, W]) split(n *bst.Node[K, V, W], key K) (l, r *bst.Node[K, V, W]) {
	if t.IsNil(n) {
		return t.Sentinel(), t.Sentinel()
	}

	if t.Less(key, t.Key(n)) {
		l, partRight := t.split(t.Left(n), key)
		t.ConnectLeft(n, partRight)
		return l, n
	}

	partLeft, r := t.split(t.Right(n), key)
	t.ConnectRight(n, partLeft)
	return n, r
}

// join merges the trees rooted at u and v, where every key of u must precede
// every key of v. The root with the greater weight wins; its inner child is
// joined recursively with the other tree.
func (t *Tree[K, V, W]) join(u, v *bst.Node[K, V, W]) *bst.Node[K, V, W] {
	if t.IsNil(u) {
		return v
	}
	if t.IsNil(v) {
		return u
	}

	if t.weightLess(v, u) {
		t.ConnectRight(u, t.join(t.Right(u), v))
		return u
	}
	t.ConnectLeft(v, t.join(u, t.Left(v)))
	return v
}

// Insert adds a new key-value pair to the tree with a weight drawn from the
// tree's weight source.
//
// Returns:
//   - (*Node, true) if a new node was inserted.
//   - (*Node, false) if the key already existed; the stored value is unchanged.
func (t *Tree[K, V, W]) Insert(key K, value V) (*bst.Node[K, V, W], bool) {
	return t.InsertWeighted(key, value, t.weight())
}

// InsertWeighted adds a new key-value pair with an explicit weight. The key
// set reachable by either side of a split/join is unchanged by the weight, so
// any weight yields a valid treap; a skewed weight distribution only costs
// balance.
func (t *Tree[K, V, W]) InsertWeighted(key K, value V, weight W) (*bst.Node[K, V, W], bool) {
	if existing, found := t.Search(key); found {
		return existing, false
	}

	n := t.NewNode(key, value, weight)
	l, r := t.split(t.Root(), key)
	t.resetRoot(t.join(t.join(l, n), r))

	t.size++
	return n, true
}

// Remove deletes the node with the given key and returns the removed value.
// The zero value and false are returned when the key is absent.
//
// The target is isolated by splitting around its in-order predecessor's key
// (one split suffices when the target holds the minimum key) and the flanking
// trees are rejoined.
func (t *Tree[K, V, W]) Remove(key K) (V, bool) {
	z, found := t.Search(key)
	if !found {
		var zero V
		return zero, false
	}
	value := t.Value(z)

	pred := t.Predecessor(z)
	if t.IsNil(pred) {
		// z holds the minimum key: everything ≤ key is exactly z
		_, r := t.split(t.Root(), key)
		t.resetRoot(r)
	} else {
		flankLeft, rest := t.split(t.Root(), t.Key(pred))
		_, flankRight := t.split(rest, key)
		t.resetRoot(t.join(flankLeft, flankRight))
	}

	t.size--
	return value, true
}

// BulkLoad builds a treap in one pass from items sorted in strictly
// increasing key order, each item carrying its own weight. The weight source
// is not called for the items; it becomes the tree's source for later Insert
// calls and may be nil when none follow.
//
// The construction maintains the right spine: each new node descends the
// spine from the root while the spine node's weight exceeds the new weight,
// becomes the right child of the last heavier spine node, and adopts the
// displaced subtree as its left child. The result is the unique treap over
// the items.
//
// The key order of items is a precondition and is not checked.
func BulkLoad[K, V, W any](less bst.LessFunc[K], wless bst.LessFunc[W], weight WeightFunc[W], items []Item[K, V, W]) *Tree[K, V, W] {
	t := New[K, V, W](less, wless, weight)

	for i, item := range items {
		if i == 0 {
			t.resetRoot(t.NewNode(item.Key, item.Value, item.Weight))
			t.size++
			continue
		}

		x := t.Root()
		prev := x
		for !t.IsNil(x) && t.wless(item.Weight, t.Metadata(x)) {
			prev = x
			x = t.Right(x)
		}

		n := t.NewNode(item.Key, item.Value, item.Weight)
		if !t.IsNil(x) {
			// n displaces x on the spine and adopts it on the left
			xParent := t.Parent(x)
			t.ConnectLeft(n, x)
			if t.IsNil(xParent) {
				t.resetRoot(n)
			} else {
				t.ConnectRight(xParent, n)
			}
		} else {
			// lightest so far: n lands at the bottom of the spine
			t.ConnectRight(prev, n)
		}
		t.size++
	}

	return t
}

// Size returns the total number of nodes in the tree.
func (t *Tree[K, V, W]) Size() int {
	return t.size
}

// IsTreeValid verifies the underlying BST structure plus the heap invariant:
// every node's weight is less than or equal to its parent's.
//
// Returns nil if the tree is valid, or an error describing the first detected
// violation.
func (t *Tree[K, V, W]) IsTreeValid() error {
	if err := t.Tree.IsTreeValid(); err != nil {
		return fmt.Errorf("underlying BST is invalid: %v", err)
	}

	var err error
	t.TraverseInOrder(t.Root(), func(n *bst.Node[K, V, W]) bool {
		if p := t.Parent(n); !t.IsNil(p) && t.weightLess(p, n) {
			err = fmt.Errorf("node %v has weight greater than its parent", t.Key(n))
			return false
		}
		return true
	})
	return err
}
