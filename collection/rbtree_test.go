package collection

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// The tree must agree with a plain map + sort reference model across any
// interleaving of inserts and deletes.
func TestRBTreeModelProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := newRBTree(KeyCompare)
		model := map[int64]int64{}

		steps := rapid.IntRange(0, 200).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			k := rapid.Int64Range(0, 40).Draw(rt, "key")
			if rapid.Bool().Draw(rt, "insert") {
				_, exists := model[k]
				inserted := tree.insert(&Entry{Key: k, Value: int64(i)})
				require.Equal(rt, !exists, inserted)
				if !exists {
					model[k] = int64(i)
				}
			} else {
				_, exists := model[k]
				require.Equal(rt, exists, tree.delete(k))
				delete(model, k)
			}
			require.Equal(rt, len(model), tree.size())
		}

		want := make([]int64, 0, len(model))
		for k := range model {
			want = append(want, k)
		}
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

		got := []int64{}
		tree.ascend(nil, func(e *Entry) bool {
			got = append(got, e.Key.(int64))
			return true
		})
		require.Equal(rt, want, got)

		back := []int64{}
		tree.descend(nil, func(e *Entry) bool {
			back = append(back, e.Key.(int64))
			return true
		})
		for i, j := 0, len(back)-1; i < j; i, j = i+1, j-1 {
			back[i], back[j] = back[j], back[i]
		}
		require.Equal(rt, want, back)
	})
}

func TestRBTreeFloorCeiling(t *testing.T) {
	tree := newRBTree(KeyCompare)
	for _, k := range []int64{10, 20, 30, 40} {
		require.True(t, tree.insert(&Entry{Key: k, Value: k}))
	}

	cases := []struct {
		key     int64
		floor   interface{}
		ceiling interface{}
	}{
		{5, nil, int64(10)},
		{10, int64(10), int64(10)},
		{25, int64(20), int64(30)},
		{40, int64(40), int64(40)},
		{45, int64(40), nil},
	}
	for _, tc := range cases {
		if f := tree.floor(tc.key); tc.floor == nil {
			require.Nil(t, f, "floor(%d)", tc.key)
		} else {
			require.NotNil(t, f, "floor(%d)", tc.key)
			require.Equal(t, tc.floor, f.Key, "floor(%d)", tc.key)
		}
		if c := tree.ceiling(tc.key); tc.ceiling == nil {
			require.Nil(t, c, "ceiling(%d)", tc.key)
		} else {
			require.NotNil(t, c, "ceiling(%d)", tc.key)
			require.Equal(t, tc.ceiling, c.Key, "ceiling(%d)", tc.key)
		}
	}
}

func TestRBTreeBoundedVisit(t *testing.T) {
	tree := newRBTree(KeyCompare)
	for k := int64(1); k <= 9; k += 2 {
		require.True(t, tree.insert(&Entry{Key: k, Value: k}))
	}

	got := []int64{}
	tree.ascend(int64(4), func(e *Entry) bool {
		got = append(got, e.Key.(int64))
		return true
	})
	require.Equal(t, []int64{5, 7, 9}, got)

	got = got[:0]
	tree.descend(int64(6), func(e *Entry) bool {
		got = append(got, e.Key.(int64))
		return true
	})
	require.Equal(t, []int64{5, 3, 1}, got)

	// early stop propagates up through the recursion
	got = got[:0]
	tree.ascend(nil, func(e *Entry) bool {
		got = append(got, e.Key.(int64))
		return len(got) < 2
	})
	require.Equal(t, []int64{1, 3}, got)
}

func TestRBTreeEmpty(t *testing.T) {
	tree := newRBTree(KeyCompare)
	require.Nil(t, tree.min())
	require.Nil(t, tree.max())
	require.Nil(t, tree.floor(int64(1)))
	require.Nil(t, tree.ceiling(int64(1)))
	require.False(t, tree.delete(int64(1)))
	_, ok := tree.search(int64(1))
	require.False(t, ok)
	require.Zero(t, tree.size())
}

func TestRBTreeSearch(t *testing.T) {
	tree := newRBTree(KeyCompare)
	for k := int64(0); k < 64; k++ {
		require.True(t, tree.insert(&Entry{Key: k, Value: k * 3}))
	}
	for k := int64(0); k < 64; k++ {
		e, ok := tree.search(k)
		require.True(t, ok)
		require.Equal(t, k*3, e.Value)
	}
	_, ok := tree.search(int64(64))
	require.False(t, ok)
}
