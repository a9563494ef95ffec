package council

import (
	"github.com/iov-one/ledger"
)

// Roles required by the privileged operations.
const (
	GovernanceRole = "governance"
	SupportRole    = "support"
)

// SeatRegistry keeps track of seat ownership.
type SeatRegistry interface {
	OwnerOf(db ledger.ReadOnlyKVStore, id uint64) (ledger.Address, error)
	// Mint creates a new seat. IDs are never reused.
	Mint(db ledger.KVStore, to ledger.Address) (uint64, error)
	Burn(db ledger.KVStore, id uint64) error
	Transfer(db ledger.KVStore, id uint64, from, to ledger.Address) error
	Count(db ledger.ReadOnlyKVStore) (uint64, error)
}

// AssetController measures and moves the revenue currency.
type AssetController interface {
	Balance(db ledger.ReadOnlyKVStore, addr ledger.Address, ticker string) (uint64, error)
	MoveCoins(db ledger.KVStore, src, dest ledger.Address, ticker string, amount uint64) error
}

// StreamSource is an external revenue stream addressed by a target and an
// ID.
type StreamSource interface {
	Withdrawable(ctx ledger.Context, db ledger.ReadOnlyKVStore, target ledger.Address, id uint64) (uint64, error)
	// Pull moves everything withdrawable into dest and returns the amount.
	Pull(ctx ledger.Context, db ledger.KVStore, target ledger.Address, id uint64, dest ledger.Address) (uint64, error)
}

// Authorizer tells whether the authenticated caller holds a role.
type Authorizer interface {
	IsAuthorized(ctx ledger.Context, db ledger.ReadOnlyKVStore, role string) bool
}
