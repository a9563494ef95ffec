package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Genesis file format
type Genesis struct {
	ChainID    string         `json:"chain_id"`
	AppOptions ledger.Options `json:"app_options"`
}

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "unmarshaling genesis file: %s", err)
	}
	if !isChainID(gen.ChainID) {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "invalid chain id %q", gen.ChainID)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...ledger.Initializer) ledger.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []ledger.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}

const chainIDKey = "_internal:chainID"

// InitState loads the genesis into the store. All initializers run in a
// single cache wrap, so that a failing one leaves the store untouched.
// Initializing an already initialized store fails.
func InitState(store CacheStore, gen Genesis, init ledger.Initializer) error {
	cache := store.CacheWrap()
	defer cache.Discard()

	switch id, err := ChainID(cache); {
	case err != nil:
		return err
	case id != "":
		return errors.Wrapf(errors.ErrInvalidState, "already initialized with chain id %q", id)
	}
	if err := cache.Set([]byte(chainIDKey), []byte(gen.ChainID)); err != nil {
		return err
	}
	if err := init.FromGenesis(gen.AppOptions, cache); err != nil {
		return errors.Wrap(err, "genesis")
	}
	return cache.Write()
}

// ChainID returns the chain id stored if any
func ChainID(db ledger.ReadOnlyKVStore) (string, error) {
	v, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", err
	}
	return string(v), nil
}
