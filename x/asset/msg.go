package asset

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

const maxMemoSize int = 128

// SendMsg moves coins from the source wallet to the destination.
type SendMsg struct {
	Source      ledger.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source"`
	Destination ledger.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

// Ensure we implement the Msg interface
var _ ledger.Msg = (*SendMsg)(nil)

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "asset/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if coin.IsEmpty(m.Amount) {
		err = errors.Field("Amount", errors.ErrInvalidAmount, "non-positive amount")
	} else {
		err = errors.AppendField(err, "Amount", m.Amount.Validate())
	}
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.ErrInvalidInput)
	}
	return err
}
