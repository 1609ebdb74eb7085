package collection_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/wecisecode/collection/collection"
)

// Keys() must stay strictly ascending and duplicate-free no matter the
// insertion order.
func TestKeysSortedProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := mustNew(t)
		inserted := map[int64]bool{}
		for _, k := range rapid.SliceOf(rapid.Int64Range(-50, 50)).Draw(rt, "keys") {
			_, _, err := c.Insert(k, k)
			require.NoError(rt, err)
			inserted[k] = true
		}
		got := c.Keys()
		require.Len(rt, got, len(inserted))
		want := make([]int64, 0, len(inserted))
		for k := range inserted {
			want = append(want, k)
		}
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		for i, k := range got {
			require.Equal(rt, want[i], k)
			if i > 0 {
				require.Less(rt, got[i-1].(int64), k.(int64))
			}
		}
	})
}

// After any successful operation sequence the entry count never exceeds the
// capacity, under either overflow policy.
func TestCapacityInvariantProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 8).Draw(rt, "capacity")
		policy := collection.Reject
		if rapid.Bool().Draw(rt, "evict") {
			policy = collection.EvictOldest
		}
		c := mustNew(t, collection.WithCapacity(capacity), collection.WithPolicy(policy))

		steps := rapid.IntRange(0, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			key := rapid.Int64Range(0, 20).Draw(rt, "key")
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0, 1:
				_, _, err := c.Insert(key, i)
				if err != nil {
					require.True(rt, collection.ErrCapacityExceeded.Contains(err))
				}
			case 2:
				_, err := c.Pop(key, nil)
				require.NoError(rt, err)
			case 3:
				_, err := c.SetDefault(key, i)
				if err != nil {
					require.True(rt, collection.ErrCapacityExceeded.Contains(err))
				}
			}
			require.LessOrEqual(rt, c.Len(), capacity)
			require.Equal(rt, c.Len(), len(c.Keys()))
		}
	})
}

// Insert then Pop returns the inserted value and leaves the collection as it
// was before the insert.
func TestInsertPopRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := mustNew(t)
		for _, k := range rapid.SliceOfDistinct(rapid.Int64Range(0, 30), rapid.ID[int64]).Draw(rt, "seed") {
			_, _, err := c.Insert(k, k*2)
			require.NoError(rt, err)
		}
		before := c.Keys()

		key := rapid.Int64Range(100, 200).Draw(rt, "key")
		value := rapid.String().Draw(rt, "value")
		_, _, err := c.Insert(key, value)
		require.NoError(rt, err)

		got, err := c.Pop(key, nil)
		require.NoError(rt, err)
		require.Equal(rt, value, got)
		require.Equal(rt, before, c.Keys())
	})
}

// The bounded iteration is exactly the subset of Keys() within the bounds.
func TestIterKeysSubsetProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := mustNew(t)
		for _, k := range rapid.SliceOf(rapid.Int64Range(-30, 30)).Draw(rt, "keys") {
			_, _, err := c.Insert(k, k)
			require.NoError(rt, err)
		}
		min := rapid.Int64Range(-40, 40).Draw(rt, "min")
		max := rapid.Int64Range(min, 40).Draw(rt, "max")

		got, err := c.IterKeys(min, max)
		require.NoError(rt, err)

		want := []interface{}{}
		for _, k := range c.Keys() {
			if k.(int64) >= min && k.(int64) <= max {
				want = append(want, k)
			}
		}
		require.Equal(rt, want, got)
	})
}
