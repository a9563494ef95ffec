package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree collects all items stored in the btree within the
// [start, end) range in ascending order. nil start or end means no bound.
//
// Items are copied out of the tree, so that the tree can be modified while
// the iterator is still open.
func ascendBtree(bt *btree.BTree, start, end []byte) []item {
	var items []item
	collect := func(it btree.Item) bool {
		items = append(items, it.(item))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(item{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(item{key: start}, collect)
	default:
		bt.AscendRange(item{key: start}, item{key: end}, collect)
	}
	return items
}

// descendBtree works like ascendBtree but returns items in the descending
// order.
func descendBtree(bt *btree.BTree, start, end []byte) []item {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// mergeIterator combines cached changes with the iterator of the backing
// store. Cached values always take precedence and deleted items hide the
// parent entries.
type mergeIterator struct {
	cached    []item
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []item, parent Iterator, ascending bool) (*mergeIterator, error) {
	it := &mergeIterator{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		return nil, err
	}
	return it, nil
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.current() != none
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIterator) Next() error {
	if err := i.advance(); err != nil {
		return err
	}
	return i.skipDeleted()
}

func (i *mergeIterator) advance() error {
	switch i.current() {
	case us:
		i.cached = i.cached[1:]
	case both:
		i.cached = i.cached[1:]
		return i.parent.Next()
	case parent:
		return i.parent.Next()
	default:
		panic("advanced past the end")
	}
	return nil
}

// skipDeleted jumps over all cached deletions that are currently pointed at.
func (i *mergeIterator) skipDeleted() error {
	for {
		src := i.current()
		if src != us && src != both {
			return nil
		}
		if !i.cached[0].deleted {
			return nil
		}
		if err := i.advance(); err != nil {
			return err
		}
	}
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() []byte {
	switch i.current() {
	case us, both:
		return i.cached[0].key
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() []byte {
	switch i.current() {
	case us, both:
		return i.cached[0].value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	i.parent.Close()
	i.cached = nil
}

// current selects the iterator with the first key in the iteration order.
func (i *mergeIterator) current() source {
	cacheValid := len(i.cached) > 0
	parentValid := i.parent != nil && i.parent.Valid()
	switch {
	case !cacheValid && !parentValid:
		return none
	case !parentValid:
		return us
	case !cacheValid:
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.cached[0].key)
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
