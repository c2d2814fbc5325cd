package rbtree

import (
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"
)

func BenchmarkTree_SearchRemove(b *testing.B) {
	// create a tree with integer key & no value,
	tree := New[int, struct{}](func(a, b int) bool {
		return a < b
	})

	// create large tree to remove from
	for i := 0; i <= 1_000_000; i++ {
		tree.Insert(i, struct{}{})
	}

	// remove
	i := 0
	for b.Loop() {
		tree.Remove(i)
		i++
	}
}

func BenchmarkGoDSRedBlackTree_SearchRemove(b *testing.B) {
	tree := redblacktree.NewWithIntComparator()

	// create large tree to remove from
	for i := 0; i <= 1_000_000; i++ {
		tree.Put(i, struct{}{})
	}

	// remove
	i := 0
	for b.Loop() {
		tree.Remove(i)
		i++
	}
}

func BenchmarkTree_Insert(b *testing.B) {
	// create a tree with integer key & no value,
	tree := New[int, struct{}](func(a, b int) bool {
		return a < b
	})
	i := 0
	for b.Loop() {
		tree.Insert(i, struct{}{})
		i++
	}
}

func BenchmarkGoDSRedBlackTree_Insert(b *testing.B) {
	tree := redblacktree.NewWithIntComparator()
	i := 0
	for b.Loop() {
		tree.Put(i, struct{}{})
		i++
	}
}
