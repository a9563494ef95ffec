package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger/errors"
)

// account is a model used only by the tests.
type account struct {
	Owner   []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Balance uint64 `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
	Label   string `protobuf:"bytes,3,opt,name=label,proto3" json:"label,omitempty"`
}

func (m *account) Reset()         { *m = account{} }
func (m *account) String() string { return proto.CompactTextString(m) }
func (*account) ProtoMessage()    {}

func (m *account) Validate() error {
	if len(m.Owner) == 0 {
		return errors.Field("Owner", errors.ErrEmpty, "required")
	}
	return nil
}

func byOwner(obj Object) ([]byte, error) {
	acc, ok := obj.Value().(*account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return acc.Owner, nil
}

func byLabel(obj Object) ([]byte, error) {
	acc, ok := obj.Value().(*account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	if acc.Label == "" {
		return nil, nil
	}
	return []byte(acc.Label), nil
}
