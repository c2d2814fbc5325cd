// Package splaytree provides a generic, self-adjusting binary search tree.
//
// The tree embeds bst.Tree with no per-node metadata. Its only shape rule is
// that every touched node is rotated up to the root: after an insertion the
// new node is the root, after a successful lookup the found node is the root,
// and a removal first splays its target to the root before unlinking it.
// Frequently accessed keys therefore migrate towards the top of the tree.
//
// The splay step rotates the touched node's parent in the direction opposite
// the node's own slot until the node has no parent. This folds the zig,
// zig-zig and zig-zag shapes into one loop; the resulting tree is a valid BST
// with the last-touched node at the root, which is this package's contract.
//
// ⚠️ Important: lookups restructure the tree. Get, GetMut and Modify all
// require the same exclusive access as Insert and Remove.
//
// # Limitations
//
//   - Not Thread-Safe – requires external synchronization for concurrent use,
//     including around reads.
//   - No Duplicate Keys – inserting an existing key is a rejected no-op.
package splaytree

import (
	"github.com/treewerk/sortedtrees/bst"
)

// Tree is a splay tree: a bst.Tree restructured on every access so that the
// most recently touched node is the root.
type Tree[K, V any] struct {
	*bst.Tree[K, V, struct{}]     // underlying BST structure
	size                      int // total number of nodes
}

// New creates a new empty splay tree ordered by less.
func New[K, V any](less bst.LessFunc[K]) *Tree[K, V] {
	return &Tree[K, V]{
		Tree: bst.New[K, V, struct{}](less),
	}
}

// splay rotates n up to the root.
func (t *Tree[K, V]) splay(n *bst.Node[K, V, struct{}]) {
	for !t.IsNil(t.Parent(n)) {
		t.Rotate(t.Parent(n), t.DirectionOf(n).Opposite())
	}
}

// Insert adds a new key-value pair to the tree and splays the new node to the
// root.
//
// Returns:
//   - (*Node, true) if a new node was inserted; it is now the root.
//   - (*Node, false) if the key already existed; the stored value and the
//     tree's shape are unchanged.
func (t *Tree[K, V]) Insert(key K, value V) (*bst.Node[K, V, struct{}], bool) {
	n, inserted := t.Tree.Insert(key, value)
	if !inserted {
		return n, false
	}
	t.splay(n)
	t.size++
	return n, true
}

// Get returns the value stored under key, splaying the found node to the
// root. The zero value and false are returned when the key is absent, in
// which case the tree is not restructured.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	n, found := t.Search(key)
	if !found {
		var zero V
		return zero, false
	}
	t.splay(n)
	return t.Value(n), true
}

// GetMut returns a pointer to the value stored under key, splaying the found
// node to the root. Nil and false when the key is absent.
//
// The pointer is invalidated by the node's removal.
func (t *Tree[K, V]) GetMut(key K) (*V, bool) {
	n, found := t.Search(key)
	if !found {
		return nil, false
	}
	t.splay(n)
	return t.ValueMut(n), true
}

// Modify overwrites the value stored under key, splaying the node to the
// root. It reports whether the key was present; the tree is untouched when it
// was not.
func (t *Tree[K, V]) Modify(key K, value V) bool {
	n, found := t.Search(key)
	if !found {
		return false
	}
	t.SetValue(n, value)
	t.splay(n)
	return true
}

// Remove deletes the node with the given key and returns the removed value.
// The zero value and false are returned when the key is absent.
//
// The target is first splayed to the root, then unlinked with the standard
// transplant deletion; the target's in-order successor heads the resulting
// tree when the target had two children.
func (t *Tree[K, V]) Remove(key K) (V, bool) {
	n, found := t.Search(key)
	if !found {
		var zero V
		return zero, false
	}
	value := t.Value(n)

	t.splay(n)
	t.Tree.Delete(n)

	t.size--
	return value, true
}

// Size returns the total number of nodes in the tree.
func (t *Tree[K, V]) Size() int {
	return t.size
}
