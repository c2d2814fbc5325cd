package bst_test

import (
	"fmt"

	"github.com/treewerk/sortedtrees/bst"
)

func ExampleTree_Insert() {

	// create the tree with integer keys and string values
	tree := bst.New[int, string, struct{}](func(a, b int) bool {
		return a < b
	})

	// insert some nodes in the tree
	tree.Insert(3, "three")
	tree.Insert(1, "one")
	tree.Insert(5, "five")

	// inserting a duplicate key leaves the stored value alone
	_, inserted := tree.Insert(3, "THREE")
	fmt.Println("inserted:", inserted)

	v, _ := tree.Get(3)
	fmt.Println("value:", v)

	// Output:
	// inserted: false
	// value: three
}

func ExampleTree_TraverseInOrder() {

	// create the tree with integer keys and no values
	tree := bst.New[int, struct{}, struct{}](func(a, b int) bool {
		return a < b
	})

	// insert keys in a jumbled order
	for _, key := range []int{8, 3, 10, 1, 6, 14, 4, 7, 13} {
		tree.Insert(key, struct{}{})
	}

	// an in-order traversal visits keys in ascending order
	tree.TraverseInOrder(tree.Root(), func(n *bst.Node[int, struct{}, struct{}]) bool {
		fmt.Print(tree.Key(n), " ")
		return true
	})
	fmt.Println()

	// Output:
	// 1 3 4 6 7 8 10 13 14
}

func ExampleTree_Remove() {

	// create the tree with string keys and integer values
	tree := bst.New[string, int, struct{}](func(a, b string) bool {
		return a < b
	})

	tree.Insert("apples", 12)
	tree.Insert("pears", 5)

	v, removed := tree.Remove("apples")
	fmt.Println(v, removed)

	_, removed = tree.Remove("apples")
	fmt.Println(removed)

	// Output:
	// 12 true
	// false
}
