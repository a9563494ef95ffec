package counciltest

import (
	"github.com/iov-one/ledger"
)

// Auth is an x.Authenticator that accepts a fixed set of signers.
//
// Signer and Signers may be combined. Signers come first in the result of
// GetConditions.
type Auth struct {
	Signer  ledger.Condition
	Signers []ledger.Condition
}

func (a *Auth) GetConditions(ledger.Context) []ledger.Condition {
	conds := make([]ledger.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
