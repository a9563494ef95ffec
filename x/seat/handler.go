package seat

import (
	"strconv"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
)

// ApproverRole is the role allowed to set the operator of any seat.
const ApproverRole = "governance"

// Authorizer tells whether the authenticated caller holds a role.
type Authorizer interface {
	IsAuthorized(ctx ledger.Context, db ledger.ReadOnlyKVStore, role string) bool
}

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, authz Authorizer, ctrl Controller) {
	r.Handle(&ApproveMsg{}, &approveHandler{authz: authz, ctrl: ctrl})
	r.Handle(&TransferMsg{}, &transferHandler{auth: auth, ctrl: ctrl})
}

type approveHandler struct {
	authz Authorizer
	ctrl  Controller
}

var _ ledger.Handler = (*approveHandler)(nil)

func (h *approveHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, _, err := h.validate(ctx, db, m)
	return err
}

func (h *approveHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, seat, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Approve(db, msg.SeatID, seat.Owner, msg.Operator); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{
		Events: []ledger.Event{
			ledger.NewEvent("seat-approved",
				"seat_id", strconv.FormatUint(msg.SeatID, 10),
				"operator", msg.Operator.String()),
		},
	}, nil
}

func (h *approveHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ApproveMsg, *Seat, error) {
	var msg ApproveMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	seat, err := h.ctrl.Get(db, msg.SeatID)
	if err != nil {
		return nil, nil, err
	}
	if !h.authz.IsAuthorized(ctx, db, ApproverRole) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s role required", ApproverRole)
	}
	return &msg, seat, nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h *transferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.SeatID, msg.From, msg.To); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{
		Events: []ledger.Event{
			ledger.NewEvent("seat-transferred",
				"seat_id", strconv.FormatUint(msg.SeatID, 10),
				"from", msg.From.String(),
				"to", msg.To.String()),
		},
	}, nil
}

func (h *transferHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*TransferMsg, error) {
	var msg TransferMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	seat, err := h.ctrl.Get(db, msg.SeatID)
	if err != nil {
		return nil, err
	}
	if !seat.Owner.Equals(msg.From) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s does not own seat %d", msg.From, msg.SeatID)
	}
	if h.auth.HasAddress(ctx, seat.Owner) {
		return &msg, nil
	}
	if len(seat.Operator) != 0 && h.auth.HasAddress(ctx, seat.Operator) {
		return &msg, nil
	}
	return nil, errors.Wrap(errors.ErrUnauthorized, "owner or operator signature missing")
}
