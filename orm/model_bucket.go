package orm

import (
	"reflect"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity,
	// ErrInvalidType is returned.
	One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db ledger.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. If key is nil, a new value is
	// generated using the bucket id sequence. The key of the stored entity
	// is returned.
	Put(db ledger.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db ledger.KVStore, key []byte) error

	// ByIndex returns the primary keys of all entities indexed under given
	// value by the named index.
	ByIndex(db ledger.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)

	// Each calls fn for every entity stored in the bucket in ascending
	// key order. dest is loaded with the entity value before each call.
	Each(db ledger.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error

	// Sequence returns the sequence used to generate primary keys.
	Sequence() Sequence
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket instance. This implementation relies on
// a bucket instance.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		idSeq: b.Sequence(SeqID),
		model: reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	idSeq Sequence
	model reflect.Type
}

func (mb *modelBucket) One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return load(obj.Value(), dest)
}

func load(res Model, dest Model) error {
	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %T", res, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db ledger.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		// nil key is a special case that would cause the store API to panic.
		return errors.ErrNotFound
	}
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db ledger.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrInvalidType, "cannot store %T in %s bucket", m, mb.b.Name())
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if len(key) == 0 {
		var err error
		key, err = mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db ledger.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) ByIndex(db ledger.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, ok := mb.b.indexes[indexName]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, indexName)
	}
	return idx.GetAt(db, value)
}

func (mb *modelBucket) Each(db ledger.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error {
	return mb.b.Each(db, func(obj Object) error {
		if err := load(obj.Value(), dest); err != nil {
			return err
		}
		return fn(obj.Key())
	})
}

func (mb *modelBucket) Sequence() Sequence {
	return mb.idSeq
}

var _ ModelBucket = (*modelBucket)(nil)
