package council

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// SeatAccount holds the claimable balance of a seat.
type SeatAccount struct {
	SeatID  uint64 `protobuf:"varint,1,opt,name=seat_id,json=seatId,proto3" json:"seat_id"`
	Balance uint64 `protobuf:"varint,2,opt,name=balance,proto3" json:"balance"`
	Active  bool   `protobuf:"varint,3,opt,name=active,proto3" json:"active"`
}

var _ orm.Model = (*SeatAccount)(nil)

func (m *SeatAccount) Reset()         { *m = SeatAccount{} }
func (m *SeatAccount) String() string { return proto.CompactTextString(m) }
func (*SeatAccount) ProtoMessage()    {}

func (m *SeatAccount) Validate() error {
	var errs error
	if m.SeatID == 0 {
		errs = errors.AppendField(errs, "SeatID", errors.ErrEmpty)
	}
	if !m.Active && m.Balance != 0 {
		errs = errors.AppendField(errs, "Balance", errors.Wrap(errors.ErrInvalidState, "retired seat with a balance"))
	}
	return errs
}

// NewSeatAccountBucket returns a bucket for storing seat accounts.
func NewSeatAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("seatacct", &SeatAccount{})
}

// AccountKey returns the primary key of the seat account.
func AccountKey(seatID uint64) []byte {
	return orm.EncodeSequence(seatID)
}

// State is the distribution accumulator.
type State struct {
	RunningRemainder     uint64 `protobuf:"varint,1,opt,name=running_remainder,json=runningRemainder,proto3" json:"running_remainder"`
	LastObservedHoldings uint64 `protobuf:"varint,2,opt,name=last_observed_holdings,json=lastObservedHoldings,proto3" json:"last_observed_holdings"`
	ActiveSeatCount      uint64 `protobuf:"varint,3,opt,name=active_seat_count,json=activeSeatCount,proto3" json:"active_seat_count"`
}

var _ orm.Model = (*State)(nil)

func (m *State) Reset()         { *m = State{} }
func (m *State) String() string { return proto.CompactTextString(m) }
func (*State) ProtoMessage()    {}

func (m *State) Validate() error {
	if m.RunningRemainder > m.LastObservedHoldings {
		return errors.Wrap(errors.ErrInvalidState, "remainder not in custody")
	}
	return nil
}

const packageName = "council"

// Configuration is the council ledger configuration, stored with gconf.
type Configuration struct {
	MinCouncilSize uint64         `protobuf:"varint,1,opt,name=min_council_size,json=minCouncilSize,proto3" json:"min_council_size"`
	StreamTarget   ledger.Address `protobuf:"bytes,2,opt,name=stream_target,json=streamTarget,proto3" json:"stream_target,omitempty"`
	StreamID       uint64         `protobuf:"varint,3,opt,name=stream_id,json=streamId,proto3" json:"stream_id"`
	RevenueTicker  string         `protobuf:"bytes,4,opt,name=revenue_ticker,json=revenueTicker,proto3" json:"revenue_ticker"`
	Paused         bool           `protobuf:"varint,5,opt,name=paused,proto3" json:"paused"`
}

var _ orm.Model = (*Configuration)(nil)

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Validate() error {
	var errs error
	if m.MinCouncilSize == 0 {
		errs = errors.AppendField(errs, "MinCouncilSize", errors.Wrap(errors.ErrInvalidInput, "must be at least 1"))
	}
	if len(m.StreamTarget) != 0 {
		errs = errors.AppendField(errs, "StreamTarget", m.StreamTarget.Validate())
	}
	if !coin.IsCC(m.RevenueTicker) {
		errs = errors.AppendField(errs, "RevenueTicker", errors.Wrapf(errors.ErrInvalidInput, "ticker %q", m.RevenueTicker))
	}
	return errs
}

// HasStream returns true if a revenue stream is configured.
func (m *Configuration) HasStream() bool {
	return len(m.StreamTarget) != 0
}
