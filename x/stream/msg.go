package stream

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

// CreateMsg funds a new stream from the source wallet.
type CreateMsg struct {
	Source      ledger.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source"`
	Recipient   ledger.Address `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Deposit     *coin.Coin     `protobuf:"bytes,3,opt,name=deposit,proto3" json:"deposit"`
	Rate        uint64         `protobuf:"varint,4,opt,name=rate,proto3" json:"rate"`
	StartHeight int64          `protobuf:"varint,5,opt,name=start_height,json=startHeight,proto3" json:"start_height"`
}

var _ ledger.Msg = (*CreateMsg)(nil)

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

func (CreateMsg) Path() string {
	return "stream/create"
}

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if coin.IsEmpty(m.Deposit) {
		errs = errors.AppendField(errs, "Deposit", errors.ErrInvalidAmount)
	} else {
		errs = errors.AppendField(errs, "Deposit", m.Deposit.Validate())
	}
	if m.Rate == 0 {
		errs = errors.AppendField(errs, "Rate", errors.ErrInvalidAmount)
	}
	if m.StartHeight < 0 {
		errs = errors.AppendField(errs, "StartHeight", errors.ErrInvalidInput)
	}
	return errs
}
