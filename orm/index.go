package orm

import (
	"bytes"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const idxPrefix = "_i."

// Indexer calculates the secondary index key for a given object. Returning
// a nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or an array of primary keys (!unique).
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
func NewIndex(name string, indexer Indexer, unique bool) Index {
	return Index{
		name:   name,
		id:     append([]byte(idxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
//
// Otherwise, it will check indexer(prev) and indexer(save)
// and make sure the key is now stored in the right location
func (i Index) Update(db ledger.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil || key == nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil || key == nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns a list of all pk at that index (may be empty), or error
func (i Index) GetAt(db ledger.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.IndexKey(index))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := Decode(val, &data); err != nil {
		return nil, err
	}
	return data.Refs, nil
}

func (i Index) move(db ledger.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrapf(errors.ErrInvalidState, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if oldKey != nil {
		if err := i.remove(db, oldKey, prev.Key()); err != nil {
			return err
		}
	}
	if newKey != nil {
		return i.insert(db, newKey, save.Key())
	}
	return nil
}

func (i Index) insert(db ledger.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	var data MultiRef
	if cur != nil {
		if err := Decode(cur, &data); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	val, err := Encode(&data)
	if err != nil {
		return err
	}
	return db.Set(dbkey, val)
}

func (i Index) remove(db ledger.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrInvalidState, "index %s references another key", i.name)
		}
		return db.Delete(dbkey)
	}

	var data MultiRef
	if err := Decode(cur, &data); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	if len(data.Refs) == 0 {
		return db.Delete(dbkey)
	}
	val, err := Encode(&data)
	if err != nil {
		return err
	}
	return db.Set(dbkey, val)
}
