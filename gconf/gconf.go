package gconf

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Configuration is implemented by any package configuration model.
type Configuration = orm.Model

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db ledger.KVStore, pkg string, src Configuration) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key(pkg))
	}
	raw, err := orm.Encode(src)
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key(pkg))
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration singleton of given package into dst.
// ErrNotFound is returned when no configuration was stored.
func Load(db ledger.ReadOnlyKVStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key(pkg))
	}
	if err := orm.Decode(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key(pkg))
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given Configuration object
// validate it, and store under the proper key in the database
// Returns an error if anything goes wrong
func InitConfig(db ledger.KVStore, opts ledger.Options, pkg string, conf Configuration) error {
	var confOptions ledger.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
