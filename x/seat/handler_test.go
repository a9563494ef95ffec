package seat

import (
	"context"
	"testing"

	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/counciltest"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x/role"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHandlers(t *testing.T) {
	Convey("Given seats owned by alice", t, func() {
		ctx := context.Background()
		db := store.MemStore()
		ctrl := NewController()
		alice := counciltest.NewCondition()
		bob := counciltest.NewCondition()
		carol := counciltest.NewCondition()
		gov := counciltest.NewCondition()

		id, err := ctrl.Mint(db, alice.Address())
		So(err, ShouldBeNil)

		roles := role.NewController()
		So(roles.Grant(db, ApproverRole, gov.Address()), ShouldBeNil)

		route := func(auth *counciltest.Auth) *app.Router {
			r := app.NewRouter()
			RegisterRoutes(r, auth, role.NewAuthorizer(auth, roles), ctrl)
			return r
		}

		Convey("The owner can transfer", func() {
			msg := &TransferMsg{SeatID: id, From: alice.Address(), To: bob.Address()}
			r := route(&counciltest.Auth{Signer: alice})
			So(r.Check(ctx, db, msg), ShouldBeNil)
			res, err := r.Deliver(ctx, db, msg)
			So(err, ShouldBeNil)
			So(res.Events[0].Type, ShouldEqual, "seat-transferred")

			owner, err := ctrl.OwnerOf(db, id)
			So(err, ShouldBeNil)
			So(owner, ShouldResemble, bob.Address())
		})

		Convey("A stranger cannot transfer", func() {
			msg := &TransferMsg{SeatID: id, From: alice.Address(), To: carol.Address()}
			_, err := route(&counciltest.Auth{Signer: carol}).Deliver(ctx, db, msg)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("Transfer from a non owner is rejected", func() {
			msg := &TransferMsg{SeatID: id, From: bob.Address(), To: carol.Address()}
			_, err := route(&counciltest.Auth{Signer: bob}).Deliver(ctx, db, msg)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("An approved operator can transfer once", func() {
			approve := &ApproveMsg{SeatID: id, Operator: carol.Address()}
			_, err := route(&counciltest.Auth{Signer: gov}).Deliver(ctx, db, approve)
			So(err, ShouldBeNil)

			byOperator := route(&counciltest.Auth{Signer: carol})
			msg := &TransferMsg{SeatID: id, From: alice.Address(), To: bob.Address()}
			_, err = byOperator.Deliver(ctx, db, msg)
			So(err, ShouldBeNil)

			// approval was cleared by the transfer
			back := &TransferMsg{SeatID: id, From: bob.Address(), To: alice.Address()}
			_, err = byOperator.Deliver(ctx, db, back)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("Governance approves an operator on a seat it does not own", func() {
			approve := &ApproveMsg{SeatID: id, Operator: bob.Address()}
			r := route(&counciltest.Auth{Signer: gov})
			So(r.Check(ctx, db, approve), ShouldBeNil)
			res, err := r.Deliver(ctx, db, approve)
			So(err, ShouldBeNil)
			So(res.Events[0].Type, ShouldEqual, "seat-approved")

			seat, err := ctrl.Get(db, id)
			So(err, ShouldBeNil)
			So(seat.Operator, ShouldResemble, bob.Address())
		})

		Convey("Neither the owner nor a stranger can approve without the role", func() {
			approve := &ApproveMsg{SeatID: id, Operator: carol.Address()}
			_, err := route(&counciltest.Auth{Signer: alice}).Deliver(ctx, db, approve)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			err = route(&counciltest.Auth{Signer: carol}).Check(ctx, db, approve)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			seat, err := ctrl.Get(db, id)
			So(err, ShouldBeNil)
			So(seat.Operator, ShouldBeEmpty)
		})

		Convey("Invalid messages are rejected", func() {
			_, err := route(&counciltest.Auth{Signer: alice}).Deliver(ctx, db, &TransferMsg{From: alice.Address(), To: bob.Address()})
			So(errors.ErrEmpty.Is(err), ShouldBeTrue)
			_, err = route(&counciltest.Auth{Signer: gov}).Deliver(ctx, db, &ApproveMsg{SeatID: 99})
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})
	})
}
