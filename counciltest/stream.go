package counciltest

import (
	"github.com/iov-one/ledger"
)

// Stream is a revenue stream double. Each pull releases a fixed Amount to
// the destination, funded by the Fund callback (usually minting into the
// destination wallet). Set Err to make every pull fail.
type Stream struct {
	Amount uint64
	Err    error
	Fund   func(db ledger.KVStore, dest ledger.Address, amount uint64) error

	// Pulls counts successful pull calls.
	Pulls int
}

func (s *Stream) Withdrawable(ctx ledger.Context, db ledger.ReadOnlyKVStore, target ledger.Address, id uint64) (uint64, error) {
	return s.Amount, nil
}

func (s *Stream) Pull(ctx ledger.Context, db ledger.KVStore, target ledger.Address, id uint64, dest ledger.Address) (uint64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	if s.Amount == 0 {
		return 0, nil
	}
	if s.Fund != nil {
		if err := s.Fund(db, dest, s.Amount); err != nil {
			return 0, err
		}
	}
	s.Pulls++
	return s.Amount, nil
}
