package council

import (
	"context"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
)

// Genesis is the content of the "council" genesis section.
type Genesis struct {
	// Seats lists the initial seat holders. Seat IDs are assigned in
	// order, starting at 1.
	Seats []ledger.Address `json:"seats"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	Ledger *Ledger
}

var _ ledger.Initializer = Initializer{}

// FromGenesis stores the configuration found under "conf"."council" and
// issues the initial seats.
func (i Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, packageName, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	var gen Genesis
	if err := opts.ReadOptions(packageName, &gen); err != nil {
		return err
	}
	if uint64(len(gen.Seats)) < conf.MinCouncilSize && len(gen.Seats) != 0 {
		return errors.Wrapf(ErrCouncilSize, "%d genesis seats, minimum %d", len(gen.Seats), conf.MinCouncilSize)
	}
	ctx := context.Background()
	for n, owner := range gen.Seats {
		if _, err := i.Ledger.Issue(ctx, db, owner); err != nil {
			return errors.Wrapf(err, "seat %d", n)
		}
	}
	return nil
}
