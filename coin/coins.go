package coin

import (
	"strings"

	"github.com/iov-one/ledger/errors"
)

// Coins represents a set of coins, sorted by the ticker, without zero value
// entries.
type Coins []*Coin

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make([]*Coin, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return Coins(res)
}

// Add returns a new set with the holdings increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	// We ignore zero values
	if c.IsZero() {
		return cs, nil
	}

	has, i := cs.findCoin(c.ID())
	// add to existing coin
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		res := cs.Clone()
		res[i] = &sum
		return res, nil
	}
	res := make(Coins, 0, len(cs)+1)
	res = append(res, cs[:i]...)
	res = append(res, &c)
	res = append(res, cs[i:]...)
	return res, nil
}

// Subtract returns a new set with the holdings decreased by c. It fails if
// there is not enough of that currency.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	has, i := cs.findCoin(c.ID())
	if has == nil {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	diff, err := has.Subtract(c)
	if err != nil {
		return nil, err
	}
	res := cs.Clone()
	if diff.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &diff
	return res, nil
}

// Contains returns true if there is at least that much
// coin in the Coins.
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.ID())
	if has == nil {
		return c.IsZero()
	}
	return has.IsGTE(c)
}

// Balance returns the amount held of given currency.
func (cs Coins) Balance(ticker string) uint64 {
	has, _ := cs.findCoin(ticker)
	if has == nil {
		return 0
	}
	return has.Amount
}

// findCoin returns a coin and index that have this
// currency code.
//
// If there was a match, then result is non-nil, and the
// index is where it was. If there was no match, then
// result is nil, and index is where it should be
// (which may be between 0 and len(cs)).
func (cs Coins) findCoin(id string) (*Coin, int) {
	for i, c := range cs {
		switch strings.Compare(id, c.ID()) {
		case -1:
			return nil, i
		case 0:
			return c, i
		}
	}
	// hit the end, must append
	return nil, len(cs)
}

// IsEmpty returns if nothing is in the Coins
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both Coins contain same coins
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are in alphabetical
// order and that each coin is valid in it's own right
//
// Zero amounts should not be present
func (cs Coins) Validate() error {
	var err error
	last := ""
	for _, c := range cs {
		err = errors.Append(err, errors.Wrap(c.Validate(), "coin"))

		if c.IsZero() {
			err = errors.Append(err, errors.Wrap(errors.ErrInvalidState, "zero coins"))
		}
		if c.Ticker <= last {
			err = errors.Append(err, errors.Wrap(errors.ErrInvalidState, "not sorted"))
		}
		last = c.Ticker
	}
	return err
}

// CombineCoins creates a Coins containing all given coins.
// It will sort them and combine duplicates to produce
// a normalized form regardless of input.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		err   error
		coins Coins
	)
	for _, c := range cs {
		coins, err = coins.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	return coins, nil
}
