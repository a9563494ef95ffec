package x

import (
	"context"

	"github.com/iov-one/ledger"
)

// Authenticator extracts the signers of the current message from the
// context. Handlers receive it on construction.
type Authenticator interface {
	// GetConditions returns every condition that signed the message.
	GetConditions(ledger.Context) []ledger.Condition
	// HasAddress tells whether any signer resolves to given address.
	HasAddress(ledger.Context, ledger.Address) bool
}

type signersKey struct{}

// WithSigners returns a context that carries given conditions as
// authenticated signers. The executor calls it once per delivered message.
func WithSigners(ctx ledger.Context, signers ...ledger.Condition) ledger.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// SignerAuth authenticates the conditions stored in the context by
// WithSigners.
type SignerAuth struct{}

var _ Authenticator = SignerAuth{}

// GetConditions returns the signers stored in the context.
func (SignerAuth) GetConditions(ctx ledger.Context) []ledger.Condition {
	signers, _ := ctx.Value(signersKey{}).([]ledger.Condition)
	return signers
}

// HasAddress returns true if any of the context signers has given address.
func (a SignerAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all signers known to auth.
func GetAddresses(ctx ledger.Context, auth Authenticator) []ledger.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]ledger.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}
