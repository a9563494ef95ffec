package council

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/counciltest"
	"github.com/iov-one/ledger/counciltest/assert"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/asset"
	"github.com/iov-one/ledger/x/role"
	"github.com/iov-one/ledger/x/seat"
)

const ticker = "TEL"

// fixture is a ledger wired to real seat, asset and role extensions and a
// stream double that releases 100 TEL on every pull.
type fixture struct {
	db     store.CacheableKVStore
	ctx    context.Context
	seats  seat.Controller
	assets asset.BaseController
	roles  role.Controller
	stream *counciltest.Stream
	ledger *Ledger

	governance ledger.Condition
	support    ledger.Condition
}

func newFixture(t testing.TB, minCouncil uint64) *fixture {
	t.Helper()
	f := &fixture{
		db:         store.MemStore(),
		ctx:        context.Background(),
		seats:      seat.NewController(),
		assets:     asset.NewController(),
		roles:      role.NewController(),
		governance: counciltest.NewCondition(),
		support:    counciltest.NewCondition(),
	}
	f.stream = &counciltest.Stream{
		Amount: 100,
		Fund: func(db ledger.KVStore, dest ledger.Address, amount uint64) error {
			return f.assets.CoinMint(db, dest, coin.NewCoin(amount, ticker))
		},
	}
	f.ledger = NewLedger(f.seats, f.assets, f.stream)

	conf := &Configuration{
		MinCouncilSize: minCouncil,
		StreamTarget:   counciltest.NewCondition().Address(),
		StreamID:       1,
		RevenueTicker:  ticker,
	}
	assert.Nil(t, gconf.Save(f.db, packageName, conf))
	assert.Nil(t, f.roles.Grant(f.db, GovernanceRole, f.governance.Address()))
	assert.Nil(t, f.roles.Grant(f.db, SupportRole, f.support.Address()))
	return f
}

// executor returns an executor routing all council messages, that
// authenticates the signers passed to Deliver.
func (f *fixture) executor(sink app.EventSink) *app.Executor {
	auth := x.SignerAuth{}
	r := app.NewRouter()
	RegisterRoutes(r, auth, role.NewAuthorizer(auth, f.roles), f.ledger)
	return app.NewExecutor(f.db, r, sink)
}

func (f *fixture) issue(t testing.TB, owner ledger.Address) uint64 {
	t.Helper()
	id, err := f.ledger.Issue(f.ctx, f.db, owner)
	assert.Nil(t, err)
	return id
}

func (f *fixture) balance(t testing.TB, id uint64) uint64 {
	t.Helper()
	b, err := f.ledger.Balance(f.db, id)
	assert.Nil(t, err)
	return b
}

func (f *fixture) wallet(t testing.TB, addr ledger.Address) uint64 {
	t.Helper()
	b, err := f.assets.Balance(f.db, addr, ticker)
	assert.Nil(t, err)
	return b
}

func (f *fixture) state(t testing.TB) *State {
	t.Helper()
	s, err := f.ledger.State(f.db)
	assert.Nil(t, err)
	return s
}

// assertBooks checks that all seat balances together with the running
// remainder are exactly the observed holdings.
func (f *fixture) assertBooks(t testing.TB) {
	t.Helper()
	seats, err := f.ledger.Seats(f.db)
	assert.Nil(t, err)
	var sum uint64
	for _, s := range seats {
		sum += s.Balance
	}
	st := f.state(t)
	if sum+st.RunningRemainder != st.LastObservedHoldings {
		t.Fatalf("balances %d + remainder %d != observed holdings %d",
			sum, st.RunningRemainder, st.LastObservedHoldings)
	}
	if uint64(len(seats)) != st.ActiveSeatCount {
		t.Fatalf("%d active accounts, state counts %d", len(seats), st.ActiveSeatCount)
	}
}
