package orm

import (
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("acct", &account{})

	key, err := b.Put(db, nil, &account{Owner: []byte("alice"), Balance: 5})
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(1), key)

	key2, err := b.Put(db, nil, &account{Owner: []byte("bob")})
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(2), key2)

	var got account
	require.NoError(t, b.One(db, key, &got))
	assert.Equal(t, []byte("alice"), got.Owner)
	assert.Equal(t, uint64(5), got.Balance)

	require.NoError(t, b.Has(db, key2))
	require.NoError(t, b.Delete(db, key2))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, key2)))
	assert.True(t, errors.ErrNotFound.Is(b.One(db, key2, &got)))
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, key2)))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, nil)))

	seq := b.Sequence()
	last, err := seq.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), last)
}

func TestModelBucketPutInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("acct", &account{})

	_, err := b.Put(db, []byte("x"), &account{})
	assert.True(t, errors.ErrEmpty.Is(err))

	_, err = b.Put(db, []byte("x"), &MultiRef{Refs: [][]byte{[]byte("a")}})
	assert.True(t, errors.ErrInvalidType.Is(err))

	var ref MultiRef
	_, err = b.Put(db, []byte("y"), &account{Owner: []byte("y")})
	require.NoError(t, err)
	assert.True(t, errors.ErrInvalidType.Is(b.One(db, []byte("y"), &ref)))
}

func TestModelBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("acct", &account{},
		WithIndex("owner", byOwner, false),
		WithIndex("label", byLabel, true),
	)

	k1, err := b.Put(db, nil, &account{Owner: []byte("alice"), Label: "one"})
	require.NoError(t, err)
	k2, err := b.Put(db, nil, &account{Owner: []byte("alice")})
	require.NoError(t, err)
	k3, err := b.Put(db, nil, &account{Owner: []byte("bob"), Label: "three"})
	require.NoError(t, err)

	keys, err := b.ByIndex(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{k1, k2}, keys)

	keys, err = b.ByIndex(db, "label", []byte("three"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{k3}, keys)

	// unique index rejects a second entity with the same value
	_, err = b.Put(db, nil, &account{Owner: []byte("carol"), Label: "one"})
	assert.True(t, errors.ErrDuplicate.Is(err))

	// moving an entity updates the index
	_, err = b.Put(db, k1, &account{Owner: []byte("bob"), Label: "one"})
	require.NoError(t, err)
	keys, err = b.ByIndex(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{k2}, keys)
	keys, err = b.ByIndex(db, "owner", []byte("bob"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{k1, k3}, keys)

	// deleting the last reference removes the index entry
	require.NoError(t, b.Delete(db, k2))
	keys, err = b.ByIndex(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = b.ByIndex(db, "unknown", nil)
	assert.True(t, ErrInvalidIndex.Is(err))
}

func TestModelBucketEach(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("acct", &account{})
	for _, balance := range []uint64{3, 1, 2} {
		_, err := b.Put(db, nil, &account{Owner: []byte("x"), Balance: balance})
		require.NoError(t, err)
	}

	var (
		acc      account
		balances []uint64
	)
	err := b.Each(db, &acc, func(key []byte) error {
		balances = append(balances, acc.Balance)
		return nil
	})
	require.NoError(t, err)
	// keys are generated by the sequence and preserve insertion order
	assert.Equal(t, []uint64{3, 1, 2}, balances)
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("acct", "id")
	other := NewSequence("acct", "other")

	v, err := a.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	bz, err := a.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(2), bz)
	assert.NoError(t, ValidateSequence(bz))

	v, err = other.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	latest, err := a.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest)

	assert.True(t, errors.ErrEmpty.Is(ValidateSequence(nil)))
	assert.True(t, errors.ErrInvalidInput.Is(ValidateSequence([]byte("abc"))))
}

func TestSingleton(t *testing.T) {
	db := store.MemStore()
	s := NewSingleton("acct")

	var got account
	assert.True(t, errors.ErrNotFound.Is(s.Load(db, &got)))
	assert.True(t, errors.ErrEmpty.Is(s.Save(db, &account{})))

	require.NoError(t, s.Save(db, &account{Owner: []byte("o"), Balance: 9}))
	require.NoError(t, s.Load(db, &got))
	assert.Equal(t, uint64(9), got.Balance)
}

func TestMultiRef(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"), []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	assert.True(t, errors.ErrDuplicate.Is(m.Add([]byte("b"))))
	require.NoError(t, m.Remove([]byte("b")))
	assert.True(t, errors.ErrNotFound.Is(m.Remove([]byte("b"))))

	bz, err := Encode(m)
	require.NoError(t, err)
	var loaded MultiRef
	require.NoError(t, Decode(bz, &loaded))
	assert.Equal(t, m.Refs, loaded.Refs)

	assert.True(t, errors.ErrEmpty.Is((&MultiRef{}).Validate()))
}
