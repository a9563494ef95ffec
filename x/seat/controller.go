package seat

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Controller manages the seats state.
type Controller struct {
	bucket orm.ModelBucket
	supply orm.Singleton
}

// NewController returns a controller using the default seat bucket.
func NewController() Controller {
	return Controller{
		bucket: NewBucket(),
		supply: orm.NewSingleton("seat_supply"),
	}
}

// Get returns the seat with given ID.
func (c Controller) Get(db ledger.ReadOnlyKVStore, id uint64) (*Seat, error) {
	var s Seat
	if err := c.bucket.One(db, SeatKey(id), &s); err != nil {
		return nil, errors.Wrapf(err, "seat %d", id)
	}
	return &s, nil
}

// OwnerOf returns the address of the seat owner.
func (c Controller) OwnerOf(db ledger.ReadOnlyKVStore, id uint64) (ledger.Address, error) {
	s, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	return s.Owner, nil
}

// Mint creates a new seat owned by given address and returns its ID.
func (c Controller) Mint(db ledger.KVStore, to ledger.Address) (uint64, error) {
	if err := to.Validate(); err != nil {
		return 0, errors.Wrap(err, "recipient")
	}
	key, err := c.bucket.Put(db, nil, &Seat{Owner: to})
	if err != nil {
		return 0, errors.Wrap(err, "cannot store seat")
	}
	if err := c.changeSupply(db, 1); err != nil {
		return 0, err
	}
	return orm.DecodeSequence(key), nil
}

// Burn destroys the seat. Its ID is never used again.
func (c Controller) Burn(db ledger.KVStore, id uint64) error {
	if err := c.bucket.Delete(db, SeatKey(id)); err != nil {
		return errors.Wrapf(err, "seat %d", id)
	}
	return c.changeSupply(db, -1)
}

// Transfer moves the seat from one owner to another. from must be the
// current owner. Any approval is cleared.
func (c Controller) Transfer(db ledger.KVStore, id uint64, from, to ledger.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	s, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if !s.Owner.Equals(from) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own seat %d", from, id)
	}
	s.Owner = to
	s.Operator = nil
	if _, err := c.bucket.Put(db, SeatKey(id), s); err != nil {
		return errors.Wrap(err, "cannot store seat")
	}
	return nil
}

// Approve sets the operator of a seat. An empty operator clears the
// approval.
func (c Controller) Approve(db ledger.KVStore, id uint64, owner, operator ledger.Address) error {
	s, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if !s.Owner.Equals(owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own seat %d", owner, id)
	}
	if operator.Equals(owner) {
		return errors.Wrap(errors.ErrInvalidInput, "owner cannot be the operator")
	}
	s.Operator = operator
	if _, err := c.bucket.Put(db, SeatKey(id), s); err != nil {
		return errors.Wrap(err, "cannot store seat")
	}
	return nil
}

// Count returns the number of existing seats.
func (c Controller) Count(db ledger.ReadOnlyKVStore) (uint64, error) {
	var s Supply
	switch err := c.supply.Load(db, &s); {
	case err == nil:
		return s.Count, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Owned returns IDs of all seats owned by given address, in ascending
// order.
func (c Controller) Owned(db ledger.ReadOnlyKVStore, owner ledger.Address) ([]uint64, error) {
	keys, err := c.bucket.ByIndex(db, ownerIndex, owner)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		ids[i] = orm.DecodeSequence(k)
	}
	return ids, nil
}

func (c Controller) changeSupply(db ledger.KVStore, diff int) error {
	n, err := c.Count(db)
	if err != nil {
		return err
	}
	switch {
	case diff < 0 && n == 0:
		return errors.Wrap(errors.ErrInvalidState, "negative seat supply")
	case diff < 0:
		n--
	default:
		n++
	}
	return c.supply.Save(db, &Supply{Count: n})
}
