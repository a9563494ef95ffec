package council

import (
	"math"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/orm"
)

// Account is the address holding all revenue that was not paid out yet.
var Account = ledger.NewCondition("council", "ledger", []byte("revenue")).Address()

// Ledger is the distribution engine. It does not hold any state itself,
// everything is read from and written to the store passed to each call.
type Ledger struct {
	registry SeatRegistry
	assets   AssetController
	stream   StreamSource
	accounts orm.ModelBucket
	state    orm.Singleton
}

// NewLedger returns a ledger using given collaborators.
func NewLedger(registry SeatRegistry, assets AssetController, stream StreamSource) *Ledger {
	return &Ledger{
		registry: registry,
		assets:   assets,
		stream:   stream,
		accounts: NewSeatAccountBucket(),
		state:    orm.NewSingleton(packageName),
	}
}

// Distribution describes what a checkpoint split.
type Distribution struct {
	// Holdings is the measured ledger account balance.
	Holdings uint64
	// Pulled is the amount pulled from the revenue stream.
	Pulled uint64
	// Share is the amount credited to each active seat.
	Share     uint64
	Remainder uint64
}

// Checkpoint splits all revenue that arrived since the previous checkpoint
// across active seats. A nil distribution is returned when there was
// nothing to split.
func (l *Ledger) Checkpoint(ctx ledger.Context, db ledger.KVStore) (*Distribution, error) {
	conf, err := l.Configuration(db)
	if err != nil {
		return nil, err
	}
	state, err := l.State(db)
	if err != nil {
		return nil, err
	}
	dist, err := l.checkpoint(ctx, db, conf, state)
	if err != nil {
		return nil, err
	}
	return dist, l.saveState(db, state)
}

// checkpoint updates state in place. The caller must save it.
func (l *Ledger) checkpoint(ctx ledger.Context, db ledger.KVStore, conf *Configuration, state *State) (*Distribution, error) {
	n := state.ActiveSeatCount
	if n == 0 {
		return nil, nil
	}

	pulled, err := l.pull(ctx, db, conf)
	if err != nil {
		return nil, err
	}

	holdings, err := l.assets.Balance(db, Account, conf.RevenueTicker)
	if err != nil {
		return nil, errors.Wrapf(ErrExternal, "ledger balance: %s", err)
	}
	if holdings < state.LastObservedHoldings {
		return nil, errors.Wrapf(errors.ErrInvalidState,
			"holdings %d below last observed %d", holdings, state.LastObservedHoldings)
	}
	arrived := holdings - state.LastObservedHoldings
	if arrived > math.MaxUint64-state.RunningRemainder {
		return nil, errors.Wrap(errors.ErrOverflow, "distributable amount")
	}
	delta := arrived + state.RunningRemainder
	if delta == 0 {
		return nil, nil
	}

	dist := &Distribution{
		Holdings:  holdings,
		Pulled:    pulled,
		Share:     delta / n,
		Remainder: delta % n,
	}
	if dist.Share > 0 {
		if err := l.credit(db, n, dist.Share); err != nil {
			return nil, err
		}
	}
	state.RunningRemainder = dist.Remainder
	state.LastObservedHoldings = holdings

	ledger.GetLogger(ctx).Debug("checkpoint",
		"arrived", arrived, "seats", n, "share", dist.Share, "remainder", dist.Remainder)
	return dist, nil
}

// pull moves the withdrawable stream revenue into the ledger account. A
// missing stream or nothing to withdraw is not an error.
func (l *Ledger) pull(ctx ledger.Context, db ledger.KVStore, conf *Configuration) (uint64, error) {
	if !conf.HasStream() || l.stream == nil {
		return 0, nil
	}
	available, err := l.stream.Withdrawable(ctx, db, conf.StreamTarget, conf.StreamID)
	switch {
	case errors.ErrNotFound.Is(err):
		ledger.GetLogger(ctx).Debug("no revenue stream", "target", conf.StreamTarget, "id", conf.StreamID)
		return 0, nil
	case err != nil:
		return 0, errors.Wrapf(ErrExternal, "stream withdrawable: %s", err)
	case available == 0:
		return 0, nil
	}
	pulled, err := l.stream.Pull(ctx, db, conf.StreamTarget, conf.StreamID, Account)
	if err != nil {
		return 0, errors.Wrapf(ErrExternal, "stream pull: %s", err)
	}
	return pulled, nil
}

// credit adds share to the balance of every active seat, in ascending seat
// ID order.
func (l *Ledger) credit(db ledger.KVStore, n uint64, share uint64) error {
	seats, err := l.Seats(db)
	if err != nil {
		return err
	}
	if uint64(len(seats)) != n {
		return errors.Wrapf(errors.ErrInvalidState, "%d active accounts, expected %d", len(seats), n)
	}
	for _, acc := range seats {
		if acc.Balance > math.MaxUint64-share {
			return errors.Wrapf(errors.ErrOverflow, "seat %d balance", acc.SeatID)
		}
		acc.Balance += share
		if _, err := l.accounts.Put(db, AccountKey(acc.SeatID), acc); err != nil {
			return errors.Wrapf(err, "seat %d", acc.SeatID)
		}
	}
	return nil
}

// payout sends amount of the revenue currency from the ledger account and
// reduces the observed holdings, so that it is not seen as new revenue.
func (l *Ledger) payout(db ledger.KVStore, conf *Configuration, state *State, to ledger.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := l.assets.MoveCoins(db, Account, to, conf.RevenueTicker, amount); err != nil {
		return errors.Wrapf(ErrExternal, "payout of %d to %s: %s", amount, to, err)
	}
	if amount > state.LastObservedHoldings {
		return errors.Wrap(errors.ErrInvalidState, "payout exceeds observed holdings")
	}
	state.LastObservedHoldings -= amount
	return nil
}

// Issue creates a new seat owned by recipient and returns its ID. Revenue
// arrived so far is split among the existing seats only.
func (l *Ledger) Issue(ctx ledger.Context, db ledger.KVStore, recipient ledger.Address) (uint64, error) {
	conf, state, err := l.load(db)
	if err != nil {
		return 0, err
	}
	if conf.Paused {
		return 0, errors.Wrap(ErrPaused, "cannot issue seats")
	}
	if _, err := l.checkpoint(ctx, db, conf, state); err != nil {
		return 0, err
	}

	id, err := l.registry.Mint(db, recipient)
	if err != nil {
		return 0, errors.Wrap(err, "mint seat")
	}
	switch err := l.accounts.Has(db, AccountKey(id)); {
	case err == nil:
		return 0, errors.Wrapf(errors.ErrDuplicate, "seat %d account", id)
	case !errors.ErrNotFound.Is(err):
		return 0, err
	}
	if _, err := l.accounts.Put(db, AccountKey(id), &SeatAccount{SeatID: id, Active: true}); err != nil {
		return 0, errors.Wrapf(err, "seat %d", id)
	}
	state.ActiveSeatCount++

	supply, err := l.registry.Count(db)
	if err != nil {
		return 0, err
	}
	if supply != state.ActiveSeatCount {
		return 0, errors.Wrapf(errors.ErrInvalidState,
			"registry holds %d seats, ledger %d", supply, state.ActiveSeatCount)
	}
	return id, l.saveState(db, state)
}

// Retire destroys the seat and pays its whole balance, including the share
// of the final checkpoint, to recipient. The paid amount is returned.
func (l *Ledger) Retire(ctx ledger.Context, db ledger.KVStore, id uint64, recipient ledger.Address) (uint64, error) {
	conf, state, err := l.load(db)
	if err != nil {
		return 0, err
	}
	if _, err := l.activeAccount(db, id); err != nil {
		return 0, err
	}
	if state.ActiveSeatCount-1 < conf.MinCouncilSize {
		return 0, errors.Wrapf(ErrCouncilSize, "%d active seats, minimum %d",
			state.ActiveSeatCount, conf.MinCouncilSize)
	}
	if _, err := l.checkpoint(ctx, db, conf, state); err != nil {
		return 0, err
	}

	acc, err := l.activeAccount(db, id)
	if err != nil {
		return 0, err
	}
	amount := acc.Balance
	if err := l.payout(db, conf, state, recipient, amount); err != nil {
		return 0, err
	}
	acc.Balance = 0
	acc.Active = false
	if _, err := l.accounts.Put(db, AccountKey(id), acc); err != nil {
		return 0, errors.Wrapf(err, "seat %d", id)
	}
	if err := l.registry.Burn(db, id); err != nil {
		return 0, errors.Wrap(err, "burn seat")
	}
	state.ActiveSeatCount--
	return amount, l.saveState(db, state)
}

// Claim pays amount from the seat balance to its owner.
func (l *Ledger) Claim(ctx ledger.Context, db ledger.KVStore, id uint64, owner ledger.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "claim must be positive")
	}
	conf, state, err := l.load(db)
	if err != nil {
		return err
	}
	if err := l.isOwner(db, id, owner); err != nil {
		return err
	}
	if _, err := l.checkpoint(ctx, db, conf, state); err != nil {
		return err
	}

	acc, err := l.activeAccount(db, id)
	if err != nil {
		return err
	}
	if amount > acc.Balance {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"amount exceeds balance: %d > %d", amount, acc.Balance)
	}
	acc.Balance -= amount
	if _, err := l.accounts.Put(db, AccountKey(id), acc); err != nil {
		return errors.Wrapf(err, "seat %d", id)
	}
	if err := l.payout(db, conf, state, owner, amount); err != nil {
		return err
	}
	return l.saveState(db, state)
}

// Reassign moves the seat from one holder to another and pays the balance
// accrued so far to recipient. The paid amount is returned.
func (l *Ledger) Reassign(ctx ledger.Context, db ledger.KVStore, id uint64, from, to, recipient ledger.Address) (uint64, error) {
	conf, state, err := l.load(db)
	if err != nil {
		return 0, err
	}
	if conf.Paused {
		return 0, errors.Wrap(ErrPaused, "cannot reassign seats")
	}
	if err := l.isOwner(db, id, from); err != nil {
		return 0, err
	}
	if _, err := l.checkpoint(ctx, db, conf, state); err != nil {
		return 0, err
	}

	acc, err := l.activeAccount(db, id)
	if err != nil {
		return 0, err
	}
	amount := acc.Balance
	if err := l.payout(db, conf, state, recipient, amount); err != nil {
		return 0, err
	}
	acc.Balance = 0
	if _, err := l.accounts.Put(db, AccountKey(id), acc); err != nil {
		return 0, errors.Wrapf(err, "seat %d", id)
	}
	if err := l.registry.Transfer(db, id, from, to); err != nil {
		return 0, errors.Wrap(err, "transfer seat")
	}
	return amount, l.saveState(db, state)
}

// UpdateStream replaces the revenue stream. Revenue withdrawable from the
// previous stream is pulled and split first.
func (l *Ledger) UpdateStream(ctx ledger.Context, db ledger.KVStore, target ledger.Address, id uint64) error {
	conf, state, err := l.load(db)
	if err != nil {
		return err
	}
	if _, err := l.checkpoint(ctx, db, conf, state); err != nil {
		return err
	}
	if err := l.saveState(db, state); err != nil {
		return err
	}
	conf.StreamTarget = target
	conf.StreamID = id
	return gconf.Save(db, packageName, conf)
}

// UpdateMinCouncil changes the minimum number of active seats. Once seats
// exist, the minimum cannot exceed their number.
func (l *Ledger) UpdateMinCouncil(db ledger.KVStore, size uint64) error {
	conf, state, err := l.load(db)
	if err != nil {
		return err
	}
	if state.ActiveSeatCount > 0 && size > state.ActiveSeatCount {
		return errors.Wrapf(ErrCouncilSize, "minimum %d exceeds %d active seats", size, state.ActiveSeatCount)
	}
	conf.MinCouncilSize = size
	return gconf.Save(db, packageName, conf)
}

// SetPaused pauses or resumes seat issuance and reassignment.
func (l *Ledger) SetPaused(db ledger.KVStore, paused bool) error {
	conf, err := l.Configuration(db)
	if err != nil {
		return err
	}
	conf.Paused = paused
	return gconf.Save(db, packageName, conf)
}

// Rescue moves coins other than the revenue currency out of the ledger
// account.
func (l *Ledger) Rescue(db ledger.KVStore, ticker string, dest ledger.Address, amount uint64) error {
	conf, err := l.Configuration(db)
	if err != nil {
		return err
	}
	if ticker == conf.RevenueTicker {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot rescue the revenue currency %s", ticker)
	}
	if err := l.assets.MoveCoins(db, Account, dest, ticker, amount); err != nil {
		return errors.Wrapf(ErrExternal, "rescue: %s", err)
	}
	return nil
}

// Balance returns the stored claimable balance of a seat. It does not run
// a checkpoint.
func (l *Ledger) Balance(db ledger.ReadOnlyKVStore, id uint64) (uint64, error) {
	var acc SeatAccount
	if err := l.accounts.One(db, AccountKey(id), &acc); err != nil {
		return 0, errors.Wrapf(err, "seat %d", id)
	}
	return acc.Balance, nil
}

// Seats returns all active seat accounts in ascending seat ID order.
func (l *Ledger) Seats(db ledger.ReadOnlyKVStore) ([]*SeatAccount, error) {
	var (
		seats []*SeatAccount
		acc   SeatAccount
	)
	err := l.accounts.Each(db, &acc, func([]byte) error {
		if acc.Active {
			cp := acc
			seats = append(seats, &cp)
		}
		return nil
	})
	return seats, err
}

// State returns the distribution state. A fresh ledger has zero state.
func (l *Ledger) State(db ledger.ReadOnlyKVStore) (*State, error) {
	var s State
	switch err := l.state.Load(db, &s); {
	case err == nil:
		return &s, nil
	case errors.ErrNotFound.Is(err):
		return &State{}, nil
	default:
		return nil, err
	}
}

// Configuration returns the ledger configuration.
func (l *Ledger) Configuration(db ledger.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "council configuration")
	}
	return &conf, nil
}

func (l *Ledger) load(db ledger.ReadOnlyKVStore) (*Configuration, *State, error) {
	conf, err := l.Configuration(db)
	if err != nil {
		return nil, nil, err
	}
	state, err := l.State(db)
	if err != nil {
		return nil, nil, err
	}
	return conf, state, nil
}

func (l *Ledger) saveState(db ledger.KVStore, state *State) error {
	return l.state.Save(db, state)
}

func (l *Ledger) activeAccount(db ledger.ReadOnlyKVStore, id uint64) (*SeatAccount, error) {
	var acc SeatAccount
	if err := l.accounts.One(db, AccountKey(id), &acc); err != nil {
		return nil, errors.Wrapf(err, "seat %d", id)
	}
	if !acc.Active {
		return nil, errors.Wrapf(errors.ErrNotFound, "seat %d is retired", id)
	}
	return &acc, nil
}

func (l *Ledger) isOwner(db ledger.ReadOnlyKVStore, id uint64, addr ledger.Address) error {
	owner, err := l.registry.OwnerOf(db, id)
	if err != nil {
		return err
	}
	if !owner.Equals(addr) {
		return errors.Wrapf(ErrNotOwner, "%s does not own seat %d", addr, id)
	}
	return nil
}
