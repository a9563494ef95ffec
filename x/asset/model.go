package asset

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Wallet holds all coins owned by an address.
type Wallet struct {
	Coins coin.Coins `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

var _ orm.Model = (*Wallet)(nil)

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Validate requires the wallet coins to be normalized.
func (m *Wallet) Validate() error {
	return errors.Field("Coins", m.Coins.Validate(), "invalid coins")
}

// NewWalletBucket returns a bucket for storing wallets, keyed by the owner
// address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallet", &Wallet{})
}

func loadWallet(b orm.ModelBucket, db ledger.ReadOnlyKVStore, addr ledger.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}

func saveWallet(b orm.ModelBucket, db ledger.KVStore, addr ledger.Address, w *Wallet) error {
	if w.Coins.IsEmpty() {
		if err := b.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	_, err := b.Put(db, addr, w)
	return err
}
