// Package sortedtrees is a family of ordered in-memory dictionaries sharing
// one surface over five binary-search-tree variants.
//
// Every variant keeps a totally-ordered set of unique key-value pairs and
// supports insertion, lookup, in-place update and removal in time
// proportional to tree height:
//
//   - bst: the unbalanced substrate and reference baseline;
//   - avltree: height-balanced via bottom-up retracing;
//   - rbtree: colour-balanced via insert/delete fix-ups;
//   - splaytree: self-adjusting, splaying every touched node to the root;
//   - treap: randomised, built from a split/join algebra, which also yields a
//     max-heap (treap.Heap).
//
// The variants share the structural primitives of package bst (rotation,
// transplant, ordered traversal, successor splicing) and differ only in the
// repair policy layered on top. All of them are single-threaded: callers
// provide any synchronization, and for splaytree that includes lookups.
package sortedtrees
