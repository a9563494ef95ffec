package stream

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// CoinMover is the part of the asset controller used to move the deposit.
type CoinMover interface {
	MoveCoins(db ledger.KVStore, src, dest ledger.Address, ticker string, amount uint64) error
}

// Controller manages streams.
type Controller struct {
	bucket orm.ModelBucket
	assets CoinMover
}

// NewController returns a controller moving funds with given asset
// controller.
func NewController(assets CoinMover) Controller {
	return Controller{
		bucket: NewBucket(),
		assets: assets,
	}
}

// Create funds a new stream from the source wallet and returns its ID.
func (c Controller) Create(db ledger.KVStore, source, recipient ledger.Address, deposit coin.Coin, rate uint64, start int64) (uint64, error) {
	seq := c.bucket.Sequence()
	id, err := seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "stream ID")
	}
	s := &Stream{
		Target:      source,
		ID:          id,
		Recipient:   recipient,
		Ticker:      deposit.Ticker,
		Deposit:     deposit.Amount,
		Rate:        rate,
		StartHeight: start,
	}
	if _, err := c.bucket.Put(db, Key(source, id), s); err != nil {
		return 0, errors.Wrap(err, "cannot store stream")
	}
	if err := c.assets.MoveCoins(db, source, s.Escrow(), s.Ticker, s.Deposit); err != nil {
		return 0, errors.Wrap(err, "fund escrow")
	}
	return id, nil
}

// Get returns the stream. ErrNotFound is returned if it does not exist.
func (c Controller) Get(db ledger.ReadOnlyKVStore, target ledger.Address, id uint64) (*Stream, error) {
	var s Stream
	if err := c.bucket.One(db, Key(target, id), &s); err != nil {
		return nil, errors.Wrapf(err, "stream %s/%d", target, id)
	}
	return &s, nil
}

// Withdrawable returns the vested and not yet withdrawn amount at the
// context block height.
func (c Controller) Withdrawable(ctx ledger.Context, db ledger.ReadOnlyKVStore, target ledger.Address, id uint64) (uint64, error) {
	s, err := c.Get(db, target, id)
	if err != nil {
		return 0, err
	}
	height, _ := ledger.GetHeight(ctx)
	return s.Available(height), nil
}

// Pull moves everything withdrawable to dest, which must be the stream
// recipient. The amount moved is returned.
func (c Controller) Pull(ctx ledger.Context, db ledger.KVStore, target ledger.Address, id uint64, dest ledger.Address) (uint64, error) {
	s, err := c.Get(db, target, id)
	if err != nil {
		return 0, err
	}
	if !s.Recipient.Equals(dest) {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not the stream recipient", dest)
	}
	height, _ := ledger.GetHeight(ctx)
	amount := s.Available(height)
	if amount == 0 {
		return 0, nil
	}
	if err := c.assets.MoveCoins(db, s.Escrow(), dest, s.Ticker, amount); err != nil {
		return 0, errors.Wrap(err, "release")
	}
	s.Withdrawn += amount
	if _, err := c.bucket.Put(db, Key(target, id), s); err != nil {
		return 0, errors.Wrap(err, "cannot store stream")
	}
	ledger.GetLogger(ctx).Debug("stream pulled",
		"target", target, "id", id, "amount", amount)
	return amount, nil
}
