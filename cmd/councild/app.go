package main

import (
	"os"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store/iavl"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/asset"
	"github.com/iov-one/ledger/x/council"
	"github.com/iov-one/ledger/x/role"
	"github.com/iov-one/ledger/x/seat"
	"github.com/iov-one/ledger/x/stream"
	"github.com/spf13/viper"
)

// node is the persistent store together with all extensions operating on
// it.
type node struct {
	store   iavl.CommitStore
	router  *app.Router
	init    ledger.Initializer
	assets  asset.BaseController
	seats   seat.Controller
	roles   role.Controller
	streams stream.Controller
	ledger  *council.Ledger
}

func openNode(conf *viper.Viper) (*node, error) {
	dir := dataDir(conf)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot create %q: %s", dir, err)
	}
	db, err := iavl.NewCommitStore(dir, conf.GetString(confDBName))
	if err != nil {
		return nil, err
	}
	if err := db.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}

	n := &node{
		store:  db,
		router: app.NewRouter(),
		assets: asset.NewController(),
		seats:  seat.NewController(),
		roles:  role.NewController(),
	}
	n.streams = stream.NewController(n.assets)
	n.ledger = council.NewLedger(n.seats, n.assets, n.streams)

	auth := x.SignerAuth{}
	authz := role.NewAuthorizer(auth, n.roles)
	asset.RegisterRoutes(n.router, auth, n.assets)
	seat.RegisterRoutes(n.router, auth, authz, n.seats)
	role.RegisterRoutes(n.router, authz)
	stream.RegisterRoutes(n.router, auth, n.streams)
	council.RegisterRoutes(n.router, auth, authz, n.ledger)

	// Order matters: streams are funded from genesis accounts and the
	// council may reference a stream.
	n.init = app.ChainInitializers(
		asset.Initializer{},
		role.Initializer{},
		stream.Initializer{Assets: n.assets},
		council.Initializer{Ledger: n.ledger},
	)
	return n, nil
}

func (n *node) Close() {
	n.store.Close()
}

// chainID returns the chain id of the initialized store.
func (n *node) chainID() (string, error) {
	id, err := app.ChainID(n.store.Adapter())
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.Wrap(errors.ErrInvalidState, "ledger not initialized, run init first")
	}
	return id, nil
}
