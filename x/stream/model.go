package stream

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Stream releases the deposit linearly, Rate units per block, starting at
// StartHeight.
type Stream struct {
	Target      ledger.Address `protobuf:"bytes,1,opt,name=target,proto3" json:"target"`
	ID          uint64         `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Recipient   ledger.Address `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient"`
	Ticker      string         `protobuf:"bytes,4,opt,name=ticker,proto3" json:"ticker"`
	Deposit     uint64         `protobuf:"varint,5,opt,name=deposit,proto3" json:"deposit"`
	Rate        uint64         `protobuf:"varint,6,opt,name=rate,proto3" json:"rate"`
	StartHeight int64          `protobuf:"varint,7,opt,name=start_height,json=startHeight,proto3" json:"start_height"`
	Withdrawn   uint64         `protobuf:"varint,8,opt,name=withdrawn,proto3" json:"withdrawn"`
}

var _ orm.Model = (*Stream)(nil)

func (m *Stream) Reset()         { *m = Stream{} }
func (m *Stream) String() string { return proto.CompactTextString(m) }
func (*Stream) ProtoMessage()    {}

func (m *Stream) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	if m.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrInvalidInput)
	}
	if m.Deposit == 0 {
		errs = errors.AppendField(errs, "Deposit", errors.ErrInvalidAmount)
	}
	if m.Rate == 0 {
		errs = errors.AppendField(errs, "Rate", errors.ErrInvalidAmount)
	}
	if m.StartHeight < 0 {
		errs = errors.AppendField(errs, "StartHeight", errors.ErrInvalidInput)
	}
	if m.Withdrawn > m.Deposit {
		errs = errors.AppendField(errs, "Withdrawn", errors.ErrInvalidState)
	}
	return errs
}

// Vested returns the amount released at given height, regardless of how
// much was already withdrawn.
func (m *Stream) Vested(height int64) uint64 {
	if height <= m.StartHeight {
		return 0
	}
	elapsed := uint64(height - m.StartHeight)
	if elapsed > m.Deposit/m.Rate {
		return m.Deposit
	}
	return elapsed * m.Rate
}

// Available returns the vested amount not withdrawn yet. A height below
// the one of an earlier pull releases nothing.
func (m *Stream) Available(height int64) uint64 {
	vested := m.Vested(height)
	if vested <= m.Withdrawn {
		return 0
	}
	return vested - m.Withdrawn
}

// Escrow returns the address that holds the not yet withdrawn deposit.
func (m *Stream) Escrow() ledger.Address {
	return EscrowAddress(m.Target, m.ID)
}

// Key returns the 8 byte, big endian encoded ID prefixed with the target.
func Key(target ledger.Address, id uint64) []byte {
	return append(append([]byte{}, target...), orm.EncodeSequence(id)...)
}

// EscrowAddress returns the address of the escrow account of a stream.
func EscrowAddress(target ledger.Address, id uint64) ledger.Address {
	return ledger.NewCondition("stream", "escrow", Key(target, id)).Address()
}

// NewBucket returns a bucket for storing streams.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("stream", &Stream{})
}
