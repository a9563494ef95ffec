package stream

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
)

const optKey = "stream"

// GenesisStream declares a stream funded at genesis. The source wallet must
// already hold the deposit, so the asset initializer must run first.
type GenesisStream struct {
	Source      ledger.Address `json:"source"`
	Recipient   ledger.Address `json:"recipient"`
	Deposit     coin.Coin      `json:"deposit"`
	Rate        uint64         `json:"rate"`
	StartHeight int64          `json:"start_height"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	Assets CoinMover
}

var _ ledger.Initializer = Initializer{}

// FromGenesis creates all streams declared in the genesis file. IDs are
// assigned in declaration order, starting at 1.
func (i Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var streams []GenesisStream
	if err := opts.ReadOptions(optKey, &streams); err != nil {
		return err
	}
	ctrl := NewController(i.Assets)
	for n, s := range streams {
		msg := CreateMsg{
			Source:      s.Source,
			Recipient:   s.Recipient,
			Deposit:     &s.Deposit,
			Rate:        s.Rate,
			StartHeight: s.StartHeight,
		}
		if err := msg.Validate(); err != nil {
			return errors.Wrapf(err, "stream %d", n)
		}
		if _, err := ctrl.Create(db, s.Source, s.Recipient, s.Deposit, s.Rate, s.StartHeight); err != nil {
			return errors.Wrapf(err, "stream %d", n)
		}
	}
	return nil
}
