package x

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/counciltest"
	"github.com/iov-one/ledger/counciltest/assert"
)

func TestSignerAuth(t *testing.T) {
	a := counciltest.NewCondition()
	b := counciltest.NewCondition()
	c := counciltest.NewCondition()

	cases := map[string]struct {
		ctx      ledger.Context
		wantAll  []ledger.Condition
		wantAddr []ledger.Address
		missing  ledger.Address
	}{
		"no signers": {
			ctx:      context.Background(),
			wantAddr: []ledger.Address{},
			missing:  a.Address(),
		},
		"signers keep order": {
			ctx:      WithSigners(context.Background(), c, a),
			wantAll:  []ledger.Condition{c, a},
			wantAddr: []ledger.Address{c.Address(), a.Address()},
			missing:  b.Address(),
		},
		"latest signers win": {
			ctx:      WithSigners(WithSigners(context.Background(), a), b),
			wantAll:  []ledger.Condition{b},
			wantAddr: []ledger.Address{b.Address()},
			missing:  a.Address(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var auth SignerAuth
			assert.Equal(t, tc.wantAll, auth.GetConditions(tc.ctx))
			assert.Equal(t, tc.wantAddr, GetAddresses(tc.ctx, auth))
			for _, s := range tc.wantAll {
				if !auth.HasAddress(tc.ctx, s.Address()) {
					t.Fatalf("signer %s not authenticated", s.Address())
				}
			}
			if auth.HasAddress(tc.ctx, tc.missing) {
				t.Fatalf("unexpected signer %s authenticated", tc.missing)
			}
		})
	}
}
