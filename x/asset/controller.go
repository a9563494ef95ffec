package asset

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Controller is the functionality needed by other extensions to read and
// move funds.
type Controller interface {
	// Balance returns the amount of given currency held by the address.
	Balance(db ledger.ReadOnlyKVStore, addr ledger.Address, ticker string) (uint64, error)
	// Wallet returns all coins held by the address.
	Wallet(db ledger.ReadOnlyKVStore, addr ledger.Address) (coin.Coins, error)
	// MoveCoins moves the given amount from src to dest. If src doesn't
	// have sufficient coins, it fails.
	MoveCoins(db ledger.KVStore, src, dest ledger.Address, ticker string, amount uint64) error
	// CoinMint adds the given amount of coins to the destination address.
	CoinMint(db ledger.KVStore, dest ledger.Address, amount coin.Coin) error
}

// BaseController is the default implementation of the Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default wallet bucket.
func NewController() BaseController {
	return BaseController{bucket: NewWalletBucket()}
}

// Balance returns the amount of given currency held by the address.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address, ticker string) (uint64, error) {
	w, err := loadWallet(c.bucket, db, addr)
	if err != nil {
		return 0, err
	}
	return w.Coins.Balance(ticker), nil
}

// Wallet returns all coins held by the address.
func (c BaseController) Wallet(db ledger.ReadOnlyKVStore, addr ledger.Address) (coin.Coins, error) {
	w, err := loadWallet(c.bucket, db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db ledger.KVStore, src, dest ledger.Address, ticker string, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	value := coin.NewCoin(amount, ticker)
	if err := value.Validate(); err != nil {
		return err
	}

	sender, err := loadWallet(c.bucket, db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(value) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d %s, needs %s",
			src, sender.Coins.Balance(ticker), ticker, value)
	}
	if sender.Coins, err = sender.Coins.Subtract(value); err != nil {
		return err
	}
	if err := saveWallet(c.bucket, db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// Recipient is loaded after the sender was saved, so that moving coins
	// to self is a no-op.
	recipient, err := loadWallet(c.bucket, db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(value); err != nil {
		return err
	}
	return errors.Wrap(saveWallet(c.bucket, db, dest, recipient), "save recipient")
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db ledger.KVStore, dest ledger.Address, amount coin.Coin) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	w, err := loadWallet(c.bucket, db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	return saveWallet(c.bucket, db, dest, w)
}
