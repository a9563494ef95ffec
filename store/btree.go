package store

import (
	"bytes"

	"github.com/google/btree"
)

// DefaultFreeListSize is the number of btree nodes kept for reuse.
const DefaultFreeListSize = btree.DefaultFreeListSize

// MemStore returns an empty in-memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap keeps all changes in a btree on top of a read only
// store. Changes reach the backing store only through the batch, when
// Write is called.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over kv that writes through batch. free
// may be nil; passing the free list of a parent cache shares its nodes.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap stacks another cache on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all changes to the backing store and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all cached changes.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
	if nb, ok := b.batch.(*NonAtomicBatch); ok {
		nb.Reset()
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(item{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(item{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get returns the cached value, falling back to the backing store for keys
// that were not modified.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	found := b.bt.Get(item{key: key})
	if found == nil {
		return b.back.Get(key)
	}
	if it := found.(item); !it.deleted {
		return it.value, nil
	}
	return nil, nil
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	val, err := b.Get(key)
	return val != nil, err
}

// Iterator merges cached changes with the backing store, in ascending key
// order.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(ascendBtree(b.bt, start, end), parent, true)
}

// ReverseIterator is like Iterator, in descending key order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(descendBtree(b.bt, start, end), parent, false)
}

// item is a cached change. A deleted item hides the backing store value.
type item struct {
	key     []byte
	value   []byte
	deleted bool
}

func (a item) Less(than btree.Item) bool {
	return bytes.Compare(a.key, than.(item).key) < 0
}
