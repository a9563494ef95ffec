package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger/errors"
)

// Model is implemented by any entity that can be stored using a Bucket.
//
// Models are protobuf messages. Their binary representation is produced by
// the protobuf runtime from the struct field tags, so a Model must not
// define custom Marshal or Unmarshal methods.
type Model interface {
	proto.Message
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// Encode returns the binary representation of given model.
func Encode(m Model) ([]byte, error) {
	bz, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	return bz, nil
}

// Decode loads given binary representation into the destination model.
func Decode(bz []byte, dest Model) error {
	if err := proto.Unmarshal(bz, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// Copy returns a deep copy of given model.
func Copy(m Model) Model {
	return proto.Clone(m).(Model)
}
