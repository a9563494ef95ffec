package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, kv ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	val, err := kv.Get(key)
	require.NoError(t, err)
	return val
}

func mustHas(t *testing.T, kv ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := kv.Has(key)
	require.NoError(t, err)
	return ok
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value and
// iterating over ranges.
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, mustGet(t, base, k))
	assert.False(t, mustHas(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, mustGet(t, base, k))
	assert.True(t, mustHas(t, base, k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, mustGet(t, cache, k2))
	assert.Nil(t, mustGet(t, base, k2))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assert.Nil(t, mustGet(t, base, k3))

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assert.False(t, mustHas(t, c3, k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assert.Nil(t, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
	assert.Nil(t, mustGet(t, base, k3))
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Set([]byte("bb"), []byte("cache-bb")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
				{Key: []byte("bb"), Value: []byte("cache-bb")},
				{Key: []byte("c"), Value: []byte("cache-c")},
				{Key: []byte("d"), Value: []byte("base-d")},
			},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("d"),
			want: []Model{
				{Key: []byte("bb"), Value: []byte("cache-bb")},
				{Key: []byte("c"), Value: []byte("cache-c")},
			},
		},
		"reverse full range": {
			reverse: true,
			want: []Model{
				{Key: []byte("d"), Value: []byte("base-d")},
				{Key: []byte("c"), Value: []byte("cache-c")},
				{Key: []byte("bb"), Value: []byte("cache-bb")},
				{Key: []byte("a"), Value: []byte("base-a")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Close()

			var got []Model
			for ; it.Valid(); require.NoError(t, it.Next()) {
				got = append(got, Model{Key: it.Key(), Value: it.Value()})
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNestedCacheDiscard(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("seat"), []byte("1")))

	inner := outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("seat"), []byte("2")))
	require.NoError(t, inner.Set([]byte("balance"), []byte("100")))
	inner.Discard()

	assert.Equal(t, []byte("1"), mustGet(t, outer, []byte("seat")))
	assert.Nil(t, mustGet(t, outer, []byte("balance")))

	require.NoError(t, outer.Write())
	assert.Equal(t, []byte("1"), mustGet(t, base, []byte("seat")))
}
