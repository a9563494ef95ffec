package orm

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Singleton is a single model stored under a fixed key. It is useful for
// module wide state that is not a collection, for example counters or
// accumulators.
//
// Singleton is using following pattern to construct a key:
//
//	_s:<name>
type Singleton struct {
	key []byte
}

// NewSingleton returns a singleton accessor for given name.
func NewSingleton(name string) Singleton {
	return Singleton{key: []byte("_s:" + name)}
}

// Load reads the stored value into dest. ErrNotFound is returned if
// nothing was stored yet.
func (s Singleton) Load(db ledger.ReadOnlyKVStore, dest Model) error {
	raw, err := db.Get(s.key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", s.key)
	}
	return Decode(raw, dest)
}

// Save validates and stores given model.
func (s Singleton) Save(db ledger.KVStore, src Model) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", s.key)
	}
	raw, err := Encode(src)
	if err != nil {
		return err
	}
	return db.Set(s.key, raw)
}
