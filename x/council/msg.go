package council

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

// IssueSeatMsg creates a new seat owned by the recipient.
type IssueSeatMsg struct {
	Recipient ledger.Address `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient"`
}

var _ ledger.Msg = (*IssueSeatMsg)(nil)

func (m *IssueSeatMsg) Reset()         { *m = IssueSeatMsg{} }
func (m *IssueSeatMsg) String() string { return proto.CompactTextString(m) }
func (*IssueSeatMsg) ProtoMessage()    {}

func (IssueSeatMsg) Path() string {
	return "council/issue_seat"
}

func (m *IssueSeatMsg) Validate() error {
	return errors.Field("Recipient", m.Recipient.Validate(), "invalid recipient")
}

// RetireSeatMsg destroys a seat and pays its balance to the recipient.
type RetireSeatMsg struct {
	SeatID    uint64         `protobuf:"varint,1,opt,name=seat_id,json=seatId,proto3" json:"seat_id"`
	Recipient ledger.Address `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
}

var _ ledger.Msg = (*RetireSeatMsg)(nil)

func (m *RetireSeatMsg) Reset()         { *m = RetireSeatMsg{} }
func (m *RetireSeatMsg) String() string { return proto.CompactTextString(m) }
func (*RetireSeatMsg) ProtoMessage()    {}

func (RetireSeatMsg) Path() string {
	return "council/retire_seat"
}

func (m *RetireSeatMsg) Validate() error {
	var errs error
	if m.SeatID == 0 {
		errs = errors.AppendField(errs, "SeatID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	return errs
}

// ClaimMsg pays part of the seat balance to the seat owner, who must sign
// the message.
type ClaimMsg struct {
	SeatID uint64 `protobuf:"varint,1,opt,name=seat_id,json=seatId,proto3" json:"seat_id"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

var _ ledger.Msg = (*ClaimMsg)(nil)

func (m *ClaimMsg) Reset()         { *m = ClaimMsg{} }
func (m *ClaimMsg) String() string { return proto.CompactTextString(m) }
func (*ClaimMsg) ProtoMessage()    {}

func (ClaimMsg) Path() string {
	return "council/claim"
}

func (m *ClaimMsg) Validate() error {
	var errs error
	if m.SeatID == 0 {
		errs = errors.AppendField(errs, "SeatID", errors.ErrEmpty)
	}
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	return errs
}

// ReassignSeatMsg moves a seat between holders and pays the accrued
// balance to the recipient, which may be either holder or a third party.
type ReassignSeatMsg struct {
	SeatID    uint64         `protobuf:"varint,1,opt,name=seat_id,json=seatId,proto3" json:"seat_id"`
	From      ledger.Address `protobuf:"bytes,2,opt,name=from,proto3" json:"from"`
	To        ledger.Address `protobuf:"bytes,3,opt,name=to,proto3" json:"to"`
	Recipient ledger.Address `protobuf:"bytes,4,opt,name=recipient,proto3" json:"recipient"`
}

var _ ledger.Msg = (*ReassignSeatMsg)(nil)

func (m *ReassignSeatMsg) Reset()         { *m = ReassignSeatMsg{} }
func (m *ReassignSeatMsg) String() string { return proto.CompactTextString(m) }
func (*ReassignSeatMsg) ProtoMessage()    {}

func (ReassignSeatMsg) Path() string {
	return "council/reassign_seat"
}

func (m *ReassignSeatMsg) Validate() error {
	var errs error
	if m.SeatID == 0 {
		errs = errors.AppendField(errs, "SeatID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	return errs
}

// CheckpointMsg splits the revenue that arrived so far. Anyone can send it.
type CheckpointMsg struct{}

var _ ledger.Msg = (*CheckpointMsg)(nil)

func (m *CheckpointMsg) Reset()         { *m = CheckpointMsg{} }
func (m *CheckpointMsg) String() string { return proto.CompactTextString(m) }
func (*CheckpointMsg) ProtoMessage()    {}

func (CheckpointMsg) Path() string {
	return "council/checkpoint"
}

func (m *CheckpointMsg) Validate() error {
	return nil
}

// UpdateStreamMsg replaces the revenue stream. An empty target disables
// pulling.
type UpdateStreamMsg struct {
	Target   ledger.Address `protobuf:"bytes,1,opt,name=target,proto3" json:"target,omitempty"`
	StreamID uint64         `protobuf:"varint,2,opt,name=stream_id,json=streamId,proto3" json:"stream_id"`
}

var _ ledger.Msg = (*UpdateStreamMsg)(nil)

func (m *UpdateStreamMsg) Reset()         { *m = UpdateStreamMsg{} }
func (m *UpdateStreamMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateStreamMsg) ProtoMessage()    {}

func (UpdateStreamMsg) Path() string {
	return "council/update_stream"
}

func (m *UpdateStreamMsg) Validate() error {
	if len(m.Target) == 0 {
		return nil
	}
	return errors.Field("Target", m.Target.Validate(), "invalid stream target")
}

// UpdateMinCouncilMsg changes the minimum number of active seats.
type UpdateMinCouncilMsg struct {
	Size uint64 `protobuf:"varint,1,opt,name=size,proto3" json:"size"`
}

var _ ledger.Msg = (*UpdateMinCouncilMsg)(nil)

func (m *UpdateMinCouncilMsg) Reset()         { *m = UpdateMinCouncilMsg{} }
func (m *UpdateMinCouncilMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateMinCouncilMsg) ProtoMessage()    {}

func (UpdateMinCouncilMsg) Path() string {
	return "council/update_min_council"
}

func (m *UpdateMinCouncilMsg) Validate() error {
	if m.Size == 0 {
		return errors.Field("Size", errors.ErrInvalidInput, "must be at least 1")
	}
	return nil
}

// PauseMsg pauses or resumes seat issuance and reassignment.
type PauseMsg struct {
	Paused bool `protobuf:"varint,1,opt,name=paused,proto3" json:"paused"`
}

var _ ledger.Msg = (*PauseMsg)(nil)

func (m *PauseMsg) Reset()         { *m = PauseMsg{} }
func (m *PauseMsg) String() string { return proto.CompactTextString(m) }
func (*PauseMsg) ProtoMessage()    {}

func (PauseMsg) Path() string {
	return "council/pause"
}

func (m *PauseMsg) Validate() error {
	return nil
}

// RescueMsg moves coins sent to the ledger account by mistake. The
// revenue currency cannot be rescued.
type RescueMsg struct {
	Amount      *coin.Coin     `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount"`
	Destination ledger.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination"`
}

var _ ledger.Msg = (*RescueMsg)(nil)

func (m *RescueMsg) Reset()         { *m = RescueMsg{} }
func (m *RescueMsg) String() string { return proto.CompactTextString(m) }
func (*RescueMsg) ProtoMessage()    {}

func (RescueMsg) Path() string {
	return "council/rescue"
}

func (m *RescueMsg) Validate() error {
	var errs error
	if coin.IsEmpty(m.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	return errs
}
