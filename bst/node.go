package bst

import (
	"fmt"
	"reflect"
	"strings"
)

// Node is a single element within a binary search tree.
//
// Each node owns one key-value pair and keeps links to its parent and its two
// children. The metadata field carries whatever per-node state a balancing
// policy layered on the tree requires: a stored height for an AVL tree, a
// colour for a red-black tree, a randomised weight for a treap. Policies that
// need no per-node state use struct{} as the metadata type.
type Node[K, V, M any] struct {
	key                 K
	value               V
	parent, left, right *Node[K, V, M]
	metadata            M
}

// IsValueNil reports whether the node's value is a nil pointer, interface,
// slice, map, channel or function. Non-nilable value types always report false.
func (n *Node[K, V, M]) IsValueNil() bool {
	// a nil interface value reaches reflect as the zero (invalid) Value
	if v := reflect.ValueOf(n.value); !v.IsValid() || (v.Kind() == reflect.Ptr ||
		v.Kind() == reflect.Interface ||
		v.Kind() == reflect.Slice ||
		v.Kind() == reflect.Map ||
		v.Kind() == reflect.Chan ||
		v.Kind() == reflect.Func) && v.IsNil() {
		return true
	}
	return false
}

// String returns the node in "key: value [metadata]" form. Keys, values and
// metadata that implement fmt.Stringer are rendered through their String
// method, everything else through fmt.Sprintf.
func (n *Node[K, V, M]) String() string {
	builder := new(strings.Builder)

	// write node key
	if s, ok := any(n.key).(fmt.Stringer); ok {
		builder.WriteString(s.String())
	} else {
		builder.WriteString(fmt.Sprintf("%v", n.key))
	}

	builder.WriteString(": ")

	// write node value
	if n.IsValueNil() {
		builder.WriteString("<nil>")
	} else {
		if s, ok := any(n.value).(fmt.Stringer); ok {
			builder.WriteString(s.String())
		} else {
			builder.WriteString(fmt.Sprintf("%v", n.value))
		}
	}

	// write node metadata
	builder.WriteString(" [")
	if s, ok := any(n.metadata).(fmt.Stringer); ok {
		builder.WriteString(s.String())
	} else {
		builder.WriteString(fmt.Sprintf("%v", n.metadata))
	}
	builder.WriteString("]")

	return builder.String()
}
