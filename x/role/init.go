package role

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const optKey = "role"

// GenesisGrant is a single role grant declared in the genesis file.
type GenesisGrant struct {
	Role    string         `json:"role"`
	Address ledger.Address `json:"address"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis stores all grants declared in the genesis file.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var grants []GenesisGrant
	if err := opts.ReadOptions(optKey, &grants); err != nil {
		return err
	}
	ctrl := NewController()
	for i, g := range grants {
		if err := ctrl.Grant(db, g.Role, g.Address); err != nil {
			return errors.Wrapf(err, "grant %d", i)
		}
	}
	return nil
}
