package seat

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Seat is a council membership token.
type Seat struct {
	Owner    ledger.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Operator ledger.Address `protobuf:"bytes,2,opt,name=operator,proto3" json:"operator,omitempty"`
}

var _ orm.Model = (*Seat)(nil)

func (m *Seat) Reset()         { *m = Seat{} }
func (m *Seat) String() string { return proto.CompactTextString(m) }
func (*Seat) ProtoMessage()    {}

func (m *Seat) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if len(m.Operator) != 0 {
		errs = errors.AppendField(errs, "Operator", m.Operator.Validate())
	}
	return errs
}

// Supply counts seats that currently exist.
type Supply struct {
	Count uint64 `protobuf:"varint,1,opt,name=count,proto3" json:"count"`
}

var _ orm.Model = (*Supply)(nil)

func (m *Supply) Reset()         { *m = Supply{} }
func (m *Supply) String() string { return proto.CompactTextString(m) }
func (*Supply) ProtoMessage()    {}

func (m *Supply) Validate() error { return nil }

const ownerIndex = "owner"

func ownerIndexer(obj orm.Object) ([]byte, error) {
	s, ok := obj.Value().(*Seat)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return s.Owner, nil
}

// NewBucket returns a bucket for storing seats, with a secondary index on
// the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("seat", &Seat{},
		orm.WithIndex(ownerIndex, ownerIndexer, false))
}

// SeatKey returns the primary key a seat with given ID is stored under.
func SeatKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}
