package seat

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// ApproveMsg sets (or clears when empty) the operator of a seat.
type ApproveMsg struct {
	SeatID   uint64         `protobuf:"varint,1,opt,name=seat_id,json=seatId,proto3" json:"seat_id"`
	Operator ledger.Address `protobuf:"bytes,2,opt,name=operator,proto3" json:"operator,omitempty"`
}

var _ ledger.Msg = (*ApproveMsg)(nil)

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

func (ApproveMsg) Path() string {
	return "seat/approve"
}

func (m *ApproveMsg) Validate() error {
	var errs error
	if m.SeatID == 0 {
		errs = errors.AppendField(errs, "SeatID", errors.ErrEmpty)
	}
	if len(m.Operator) != 0 {
		errs = errors.AppendField(errs, "Operator", m.Operator.Validate())
	}
	return errs
}

// TransferMsg moves a seat to a new owner.
type TransferMsg struct {
	SeatID uint64         `protobuf:"varint,1,opt,name=seat_id,json=seatId,proto3" json:"seat_id"`
	From   ledger.Address `protobuf:"bytes,2,opt,name=from,proto3" json:"from"`
	To     ledger.Address `protobuf:"bytes,3,opt,name=to,proto3" json:"to"`
}

var _ ledger.Msg = (*TransferMsg)(nil)

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

func (TransferMsg) Path() string {
	return "seat/transfer"
}

func (m *TransferMsg) Validate() error {
	var errs error
	if m.SeatID == 0 {
		errs = errors.AppendField(errs, "SeatID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	return errs
}
