package orm

import (
	"encoding/binary"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db ledger.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db ledger.KVStore) (uint64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state.
func (s *Sequence) Latest(db ledger.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw), nil
}

func (s *Sequence) increment(db ledger.KVStore, inc uint64) (uint64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, err
	}
	val := DecodeSequence(raw)
	if val+inc < val {
		return 0, nil, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	val += inc
	raw = EncodeSequence(val)
	return val, raw, db.Set(s.id, raw)
}

// DecodeSequence returns the numeric value of an 8 byte sequence key.
func DecodeSequence(bz []byte) uint64 {
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// EncodeSequence returns the big endian, 8 byte representation of a
// sequence value. Encoded values keep their numeric order when compared
// with bytes.Compare.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// ValidateSequence returns an error if this is not an 8-byte
// sequence value.
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInvalidInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}
