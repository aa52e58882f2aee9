package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, base.Get(k))
	assert.False(t, base.Has(k))
	base.Set(k, v)
	assert.Equal(t, v, base.Get(k))
	assert.True(t, base.Has(k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, cache.Get(k))
	assert.True(t, cache.Has(k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Get(k2))
	assert.False(t, cache.Has(k2))
	cache.Set(k2, v2)
	assert.Equal(t, v2, cache.Get(k2))
	assert.Nil(t, base.Get(k2))
	assert.True(t, cache.Has(k2))
	assert.False(t, base.Has(k2))

	// we can write the cache to the base layer...
	cache.Write()
	assert.Equal(t, v, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))
	assert.True(t, base.Has(k))
	assert.True(t, base.Has(k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Equal(t, v, c2.Get(k))
	assert.Equal(t, v2, c2.Get(k2))
	c2.Set(k3, v3)
	c2.Discard()

	// and the base is unchanged
	assert.Equal(t, v, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))
	assert.Nil(t, base.Get(k3))

	// write and discard is a no-op
	c3 := base.CacheWrap()
	c3.Delete(k)
	c3.Write()
	assert.Nil(t, base.Get(k))
	assert.False(t, base.Has(k))
	assert.Equal(t, v2, base.Get(k2))
}

func TestBTreeCacheConflicts(t *testing.T) {
	// make sure we handle overwrites and deletes properly
	ms := MemStore()

	k, v := []byte("first"), []byte("one")
	k2, v2 := []byte("second"), []byte("two")
	ms.Set(k, v)
	ms.Set(k2, v2)

	cache := ms.CacheWrap()

	// overwrite a value and delete another in the cache
	v3 := []byte("uno")
	cache.Set(k, v3)
	cache.Delete(k2)
	assert.Equal(t, v3, cache.Get(k))
	assert.Nil(t, cache.Get(k2))
	assert.False(t, cache.Has(k2))

	// the backing store is untouched until write
	assert.Equal(t, v, ms.Get(k))
	assert.Equal(t, v2, ms.Get(k2))

	cache.Write()
	assert.Equal(t, v3, ms.Get(k))
	assert.Nil(t, ms.Get(k2))
}

func TestMemStoreIsolation(t *testing.T) {
	ms := MemStore()
	k, v := []byte("pizza"), []byte("hawaii")

	// discarded wrap leaves no trace
	cache := ms.CacheWrap()
	cache.Set(k, v)
	assert.Equal(t, v, cache.Get(k))
	cache.Discard()
	assert.Nil(t, ms.Get(k))

	// a fresh wrap starts from the committed state
	c2 := ms.CacheWrap()
	assert.Nil(t, c2.Get(k))
}
