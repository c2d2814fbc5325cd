package treap

import (
	"github.com/treewerk/sortedtrees/bst"
)

// Heap is a max-heap on weights built over a treap with throwaway values.
//
// The treap's heap invariant puts the maximum weight at the root, so Top is a
// root read and Pop removes the root's key. Entries are identified by key:
// pushing a key that is already present is rejected.
type Heap[K, W any] struct {
	tree *Tree[K, struct{}, W]
}

// NewHeap creates an empty max-heap with keys ordered by less and weights
// ordered by wless.
func NewHeap[K, W any](less bst.LessFunc[K], wless bst.LessFunc[W]) *Heap[K, W] {
	return &Heap[K, W]{
		// Push always supplies the weight, so the tree needs no weight source
		tree: New[K, struct{}, W](less, wless, nil),
	}
}

// NewIntHeap creates an empty max-heap with int keys and int weights.
func NewIntHeap() *Heap[int, int] {
	intLess := func(a, b int) bool { return a < b }
	return NewHeap[int, int](intLess, intLess)
}

// Push adds an entry under the given key with the given weight. It reports
// whether the entry was added; pushing an existing key is a rejected no-op.
func (h *Heap[K, W]) Push(key K, weight W) bool {
	_, inserted := h.tree.InsertWeighted(key, struct{}{}, weight)
	return inserted
}

// Top returns the maximum weight without removing its entry. The zero value
// and false are returned when the heap is empty.
func (h *Heap[K, W]) Top() (W, bool) {
	if h.IsEmpty() {
		var zero W
		return zero, false
	}
	return h.tree.Metadata(h.tree.Root()), true
}

// Pop removes the entry with the maximum weight and returns that weight. The
// zero value and false are returned when the heap is empty.
func (h *Heap[K, W]) Pop() (W, bool) {
	if h.IsEmpty() {
		var zero W
		return zero, false
	}
	root := h.tree.Root()
	weight := h.tree.Metadata(root)
	h.tree.Remove(h.tree.Key(root))
	return weight, true
}

// Len returns the number of entries in the heap.
func (h *Heap[K, W]) Len() int {
	return h.tree.Size()
}

// IsEmpty reports whether the heap holds no entries.
func (h *Heap[K, W]) IsEmpty() bool {
	return h.Len() == 0
}
