package council

import "github.com/iov-one/ledger/errors"

// Errors specific to the council ledger. Codes are in the 1000 range.
var (
	ErrCouncilSize = errors.Register(1000, "must maintain council")
	ErrNotOwner    = errors.Register(1001, "not the seat owner")
	ErrPaused      = errors.Register(1002, "ledger paused")
	ErrExternal    = errors.Register(1003, "external failure")
)
