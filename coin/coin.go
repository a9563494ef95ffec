package coin

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/iov-one/ledger/errors"
)

//-------------- Coin -----------------------

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of a single currency, expressed in its smallest,
// indivisible units.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins represents no value and does not have a ticker
	// set then it has no influence on the addition result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "adding %s to %s", c.Ticker, o.Ticker)
	}
	if c.Amount > math.MaxUint64-o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract given amount. Coins cannot hold negative values, so subtracting
// more than available fails with ErrInsufficientAmount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if c.Amount < o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", c, o)
	}
	c.Amount -= o.Amount
	return c, nil
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Validate ensures that the coin has a valid currency code.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid currency: %s", c.Ticker)
	}
	return nil
}

func (c *Coin) UnmarshalJSON(raw []byte) error {
	// Prioritize human readable format that is a string in format
	// "<amount> <ticker>"
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		*c = parsed
		return err
	}

	// Fallback into the default unmarhaling. Because UnmarshalJSON method
	// is provided, we can no longer use Coin type for this.
	var coin struct {
		Ticker string
		Amount uint64
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return err
	}
	c.Ticker = coin.Ticker
	c.Amount = coin.Amount
	return nil
}

// String provides a human readable representation of the coin. For a valid
// coin the result can be parsed back with ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return strconv.FormatUint(c.Amount, 10) + " " + c.Ticker
}

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//
//	"<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	var c Coin
	results := humanCoinFormatRx.FindStringSubmatch(h)
	if len(results) != 3 {
		return c, errors.Wrapf(errors.ErrInvalidInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseUint(results[1], 10, 64)
	if err != nil {
		return c, errors.Wrapf(errors.ErrInvalidInput, "invalid amount: %s", err)
	}
	return Coin{Ticker: results[2], Amount: amount}, nil
}

var humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+)\s*([A-Z]{3,4})\s*$`)

var _ fmt.Stringer = Coin{}
