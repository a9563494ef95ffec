package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/counciltest/assert"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// keyInitializer writes each element of its genesis section.
type keyInitializer struct {
	key string
}

func (i keyInitializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var values []string
	if err := opts.ReadOptions(i.key, &values); err != nil {
		return err
	}
	for _, v := range values {
		if v == "fail" {
			return errors.Wrap(errors.ErrInvalidInput, "fail")
		}
		if err := db.Set([]byte(i.key+":"+v), []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

func writeGenesis(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	path := filepath.Join(dir, "genesis.json")
	assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitState(t *testing.T) {
	path := writeGenesis(t, `{"chain_id": "test-chain", "app_options": {"a": ["x"], "b": ["y"]}}`)
	defer os.RemoveAll(filepath.Dir(path))

	gen, err := LoadGenesis(path)
	assert.Nil(t, err)

	db := store.MemStore()
	init := ChainInitializers(keyInitializer{"a"}, keyInitializer{"b"})
	assert.Nil(t, InitState(db, gen, init))

	id, err := ChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", id)
	for _, k := range []string{"a:x", "b:y"} {
		ok, err := db.Has([]byte(k))
		assert.Nil(t, err)
		assert.Equal(t, true, ok)
	}

	err = InitState(db, gen, init)
	assert.IsErr(t, errors.ErrInvalidState, err)
}

func TestInitStateFailureLeavesStoreEmpty(t *testing.T) {
	gen := Genesis{
		ChainID:    "test-chain",
		AppOptions: ledger.Options{"a": []byte(`["x"]`), "b": []byte(`["fail"]`)},
	}
	db := store.MemStore()
	err := InitState(db, gen, ChainInitializers(keyInitializer{"a"}, keyInitializer{"b"}))
	assert.IsErr(t, errors.ErrInvalidInput, err)

	id, err := ChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "", id)
	ok, err := db.Has([]byte("a:x"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestLoadGenesisErrors(t *testing.T) {
	_, err := LoadGenesis("/non/existing/genesis.json")
	assert.IsErr(t, errors.ErrInvalidInput, err)

	path := writeGenesis(t, `{"chain_id": "x"}`)
	defer os.RemoveAll(filepath.Dir(path))
	_, err = LoadGenesis(path)
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
