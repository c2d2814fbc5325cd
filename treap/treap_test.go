package treap

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treewerk/sortedtrees/bst"
)

func intLess(a, b int) bool { return a < b }

// fixedWeights returns a WeightFunc handing out the given weights in order.
func fixedWeights(weights ...int) WeightFunc[int] {
	i := 0
	return func() int {
		w := weights[i]
		i++
		return w
	}
}

func newIntTreap() *Tree[int, struct{}, uint64] {
	return NewWithRandomWeights[int, struct{}](intLess)
}

func TestNew(t *testing.T) {
	tree := newIntTreap()
	assert.NoError(t, tree.IsTreeValid(), "expected valid tree")
	assert.True(t, tree.IsNil(tree.Root()), "expected new tree to have nil root")
	assert.Equal(t, 0, tree.Size())
}

func TestTree_InsertStepwise(t *testing.T) {
	tree := newIntTreap()

	for _, key := range []int{87, 40, 89, 39, 24, 70, 9, 2, 67} {
		_, inserted := tree.Insert(key, struct{}{})
		assert.True(t, inserted, "expected insert of unique key %d", key)
		require.NoError(t, tree.IsTreeValid(), "expected valid tree after inserting %d", key)
	}

	assert.Equal(t, 9, tree.Size())
}

func TestTree_DuplicateInsert(t *testing.T) {
	tree := newIntTreap()

	for _, key := range []int{87, 40, 89, 39, 24, 70, 9, 2, 67} {
		tree.Insert(key, struct{}{})
	}

	// re-inserting present keys must be rejected and leave the treap valid
	for _, key := range []int{67, 24, 9} {
		_, inserted := tree.Insert(key, struct{}{})
		assert.False(t, inserted, "expected duplicate insert of %d to be rejected", key)
		require.NoError(t, tree.IsTreeValid())
	}

	assert.Equal(t, 9, tree.Size())
}

func TestTree_InsertWeightedDeterministic(t *testing.T) {
	tree := New[int, struct{}, int](intLess, intLess, nil)

	tree.InsertWeighted(6, struct{}{}, 14)
	tree.InsertWeighted(52, struct{}{}, 21)
	tree.InsertWeighted(40, struct{}{}, 82)
	tree.InsertWeighted(18, struct{}{}, 22)
	require.NoError(t, tree.IsTreeValid())

	// the heaviest weight must sit at the root
	assert.Equal(t, 40, tree.Key(tree.Root()))
	assert.Equal(t, 82, tree.Metadata(tree.Root()))

	_, removed := tree.Remove(40)
	assert.True(t, removed)
	require.NoError(t, tree.IsTreeValid())
	_, found := tree.Get(40)
	assert.False(t, found)

	_, removed = tree.Remove(6)
	assert.True(t, removed)
	require.NoError(t, tree.IsTreeValid())

	_, removed = tree.Remove(18)
	assert.True(t, removed)
	require.NoError(t, tree.IsTreeValid())
	_, found = tree.Get(18)
	assert.False(t, found)

	// 52 is the lone survivor
	assert.Equal(t, 52, tree.Key(tree.Root()))
	assert.Equal(t, 1, tree.Size())
}

func TestTree_RemoveMinimumKey(t *testing.T) {
	tree := New[int, struct{}, int](intLess, intLess, fixedWeights(5, 9, 1, 7))

	for _, key := range []int{20, 10, 30, 25} {
		tree.Insert(key, struct{}{})
	}
	require.NoError(t, tree.IsTreeValid())

	// 10 has no in-order predecessor: the single-split path
	_, removed := tree.Remove(10)
	assert.True(t, removed)
	require.NoError(t, tree.IsTreeValid())
	_, found := tree.Get(10)
	assert.False(t, found)
	assert.Equal(t, 3, tree.Size())
}

func TestTree_RemoveMissing(t *testing.T) {
	tree := newIntTreap()

	_, removed := tree.Remove(1)
	assert.False(t, removed, "expected Remove miss on empty tree")

	tree.Insert(1, struct{}{})
	_, removed = tree.Remove(2)
	assert.False(t, removed)
	assert.Equal(t, 1, tree.Size())
}

func TestTree_ModifyAndGetMut(t *testing.T) {
	tree := NewWithRandomWeights[int, string](intLess)
	tree.Insert(1, "one")
	tree.Insert(2, "two")

	assert.True(t, tree.Modify(2, "TWO"))
	v, _ := tree.Get(2)
	assert.Equal(t, "TWO", v)

	p, found := tree.GetMut(1)
	require.True(t, found)
	*p = "ONE"
	v, _ = tree.Get(1)
	assert.Equal(t, "ONE", v)

	assert.NoError(t, tree.IsTreeValid())
}

func TestTree_RandomSoak(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 19))

	for round := 0; round < 5; round++ {
		tree := New[uint64, uint64, uint64](
			func(a, b uint64) bool { return a < b },
			func(a, b uint64) bool { return a < b },
			rng.Uint64,
		)
		ref := make(map[uint64]uint64)

		for len(ref) < 500 {
			k := rng.Uint64()
			if _, dup := ref[k]; dup {
				continue
			}
			ref[k] = k + 1000

			_, inserted := tree.Insert(k, k+1000)
			assert.True(t, inserted)

			if len(ref)%100 == 0 {
				require.NoError(t, tree.IsTreeValid())
			}
		}
		require.NoError(t, tree.IsTreeValid())
		assert.Equal(t, len(ref), tree.Size())

		order := make([]uint64, 0, len(ref))
		for k := range ref {
			order = append(order, k)
		}
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for i, k := range order {
			v, removed := tree.Remove(k)
			assert.True(t, removed)
			assert.Equal(t, ref[k], v)

			_, found := tree.Get(k)
			assert.False(t, found)

			if i%100 == 0 {
				require.NoError(t, tree.IsTreeValid())
			}
		}
		assert.True(t, tree.IsNil(tree.Root()))
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(53, 59))

	tree := New[int, int, uint64](intLess, func(a, b uint64) bool { return a < b }, rng.Uint64)
	for i := 0; i < 100; i++ {
		tree.Insert(i, i*10)
	}
	require.NoError(t, tree.IsTreeValid())

	// splitting and rejoining around any key must preserve the content and
	// leave a valid treap
	for _, pivot := range []int{-1, 0, 13, 50, 99, 500} {
		l, r := tree.split(tree.Root(), pivot)

		// every key in l is ≤ pivot, every key in r is greater
		tree.TraverseInOrder(l, func(n *bst.Node[int, int, uint64]) bool {
			assert.LessOrEqual(t, tree.Key(n), pivot)
			return true
		})
		tree.TraverseInOrder(r, func(n *bst.Node[int, int, uint64]) bool {
			assert.Greater(t, tree.Key(n), pivot)
			return true
		})

		tree.resetRoot(tree.join(l, r))
		require.NoError(t, tree.IsTreeValid(), "expected valid treap after rejoining around %d", pivot)
	}

	for i := 0; i < 100; i++ {
		v, found := tree.Get(i)
		assert.True(t, found)
		assert.Equal(t, i*10, v)
	}
	assert.Equal(t, 100, tree.Size())
}

func TestBulkLoad(t *testing.T) {
	rng := rand.New(rand.NewPCG(23, 29))

	items := make([]Item[int, struct{}, uint64], 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, Item[int, struct{}, uint64]{
			Key:    i,
			Weight: rng.Uint64(),
		})
	}

	tree := BulkLoad[int, struct{}, uint64](
		intLess,
		func(a, b uint64) bool { return a < b },
		nil,
		items,
	)

	require.NoError(t, tree.IsTreeValid())
	assert.Equal(t, 1000, tree.Size())

	// the in-order walk must yield 0..999
	next := 0
	tree.TraverseInOrder(tree.Root(), func(n *bst.Node[int, struct{}, uint64]) bool {
		assert.Equal(t, next, tree.Key(n))
		next++
		return true
	})
	assert.Equal(t, 1000, next)
}

func TestBulkLoad_Empty(t *testing.T) {
	tree := BulkLoad[int, struct{}, uint64](
		intLess,
		func(a, b uint64) bool { return a < b },
		nil,
		nil,
	)
	assert.True(t, tree.IsNil(tree.Root()))
	assert.NoError(t, tree.IsTreeValid())
}

func TestBulkLoad_MatchesIncrementalContent(t *testing.T) {
	rng := rand.New(rand.NewPCG(31, 37))

	const n = 200
	weights := make([]uint64, n)
	for i := range weights {
		weights[i] = rng.Uint64()
	}

	items := make([]Item[int, int, uint64], 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item[int, int, uint64]{Key: i, Value: i * 10, Weight: weights[i]})
	}
	bulk := BulkLoad[int, int, uint64](
		intLess,
		func(a, b uint64) bool { return a < b },
		nil,
		items,
	)

	incremental := New[int, int, uint64](intLess, func(a, b uint64) bool { return a < b }, nil)
	for i := n - 1; i >= 0; i-- {
		incremental.InsertWeighted(i, i*10, weights[i])
	}

	require.NoError(t, bulk.IsTreeValid())
	require.NoError(t, incremental.IsTreeValid())

	// same content regardless of construction order
	for i := 0; i < n; i++ {
		bv, bok := bulk.Get(i)
		iv, iok := incremental.Get(i)
		assert.True(t, bok)
		assert.True(t, iok)
		assert.Equal(t, bv, iv)
	}
}
