package council

import (
	"strconv"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, authz Authorizer, l *Ledger) {
	d := deps{auth: auth, authz: authz, ledger: l}
	r.Handle(&IssueSeatMsg{}, issueSeatHandler{d})
	r.Handle(&RetireSeatMsg{}, retireSeatHandler{d})
	r.Handle(&ClaimMsg{}, claimHandler{d})
	r.Handle(&ReassignSeatMsg{}, reassignSeatHandler{d})
	r.Handle(&CheckpointMsg{}, checkpointHandler{d})
	r.Handle(&UpdateStreamMsg{}, updateStreamHandler{d})
	r.Handle(&UpdateMinCouncilMsg{}, updateMinCouncilHandler{d})
	r.Handle(&PauseMsg{}, pauseHandler{d})
	r.Handle(&RescueMsg{}, rescueHandler{d})
}

type deps struct {
	auth   x.Authenticator
	authz  Authorizer
	ledger *Ledger
}

func (d deps) requireRole(ctx ledger.Context, db ledger.ReadOnlyKVStore, role string) error {
	if !d.authz.IsAuthorized(ctx, db, role) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s role required", role)
	}
	return nil
}

func itoa(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func result(events ...ledger.Event) *ledger.DeliverResult {
	return &ledger.DeliverResult{Events: events}
}

type issueSeatHandler struct{ deps }

func (h issueSeatHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h issueSeatHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	seatID, err := h.ledger.Issue(ctx, db, msg.Recipient)
	if err != nil {
		return nil, err
	}
	res := result(ledger.NewEvent("seat-created",
		"seat_id", itoa(seatID),
		"owner", msg.Recipient.String()))
	res.Data = orm.EncodeSequence(seatID)
	return res, nil
}

func (h issueSeatHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*IssueSeatMsg, error) {
	var msg IssueSeatMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, h.requireRole(ctx, db, GovernanceRole)
}

type retireSeatHandler struct{ deps }

func (h retireSeatHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h retireSeatHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	amount, err := h.ledger.Retire(ctx, db, msg.SeatID, msg.Recipient)
	if err != nil {
		return nil, err
	}
	return result(ledger.NewEvent("seat-retired",
		"seat_id", itoa(msg.SeatID),
		"recipient", msg.Recipient.String(),
		"amount", itoa(amount))), nil
}

func (h retireSeatHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*RetireSeatMsg, error) {
	var msg RetireSeatMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, h.requireRole(ctx, db, GovernanceRole)
}

type claimHandler struct{ deps }

func (h claimHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, _, err := h.validate(ctx, db, m)
	return err
}

func (h claimHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Claim(ctx, db, msg.SeatID, owner, msg.Amount); err != nil {
		return nil, err
	}
	return result(ledger.NewEvent("funds-claimed",
		"seat_id", itoa(msg.SeatID),
		"claimant", owner.String(),
		"amount", itoa(msg.Amount))), nil
}

// validate returns the seat owner, who must have signed the message.
func (h claimHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ClaimMsg, ledger.Address, error) {
	var msg ClaimMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := h.ledger.registry.OwnerOf(db, msg.SeatID)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "seat %d", msg.SeatID)
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrapf(ErrNotOwner, "seat %d owner signature missing", msg.SeatID)
	}
	return &msg, owner, nil
}

type reassignSeatHandler struct{ deps }

func (h reassignSeatHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h reassignSeatHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	amount, err := h.ledger.Reassign(ctx, db, msg.SeatID, msg.From, msg.To, msg.Recipient)
	if err != nil {
		return nil, err
	}
	return result(ledger.NewEvent("seat-reassigned",
		"seat_id", itoa(msg.SeatID),
		"from", msg.From.String(),
		"to", msg.To.String(),
		"recipient", msg.Recipient.String(),
		"amount", itoa(amount))), nil
}

func (h reassignSeatHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ReassignSeatMsg, error) {
	var msg ReassignSeatMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.requireRole(ctx, db, GovernanceRole); err != nil {
		return nil, err
	}
	return &msg, h.ledger.isOwner(db, msg.SeatID, msg.From)
}

type checkpointHandler struct{ deps }

func (h checkpointHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	var msg CheckpointMsg
	return ledger.LoadMsg(m, &msg)
}

func (h checkpointHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	var msg CheckpointMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	dist, err := h.ledger.Checkpoint(ctx, db)
	if err != nil {
		return nil, err
	}
	if dist == nil {
		return result(), nil
	}
	return result(ledger.NewEvent("checkpoint",
		"holdings", itoa(dist.Holdings),
		"pulled", itoa(dist.Pulled),
		"share", itoa(dist.Share),
		"remainder", itoa(dist.Remainder))), nil
}

type updateStreamHandler struct{ deps }

func (h updateStreamHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h updateStreamHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.UpdateStream(ctx, db, msg.Target, msg.StreamID); err != nil {
		return nil, err
	}
	return result(ledger.NewEvent("stream-target-updated",
		"target", msg.Target.String(),
		"stream_id", itoa(msg.StreamID))), nil
}

func (h updateStreamHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*UpdateStreamMsg, error) {
	var msg UpdateStreamMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, h.requireRole(ctx, db, GovernanceRole)
}

type updateMinCouncilHandler struct{ deps }

func (h updateMinCouncilHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h updateMinCouncilHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.UpdateMinCouncil(db, msg.Size); err != nil {
		return nil, err
	}
	return result(ledger.NewEvent("min-council-updated", "size", itoa(msg.Size))), nil
}

func (h updateMinCouncilHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*UpdateMinCouncilMsg, error) {
	var msg UpdateMinCouncilMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, h.requireRole(ctx, db, GovernanceRole)
}

type pauseHandler struct{ deps }

func (h pauseHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h pauseHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.SetPaused(db, msg.Paused); err != nil {
		return nil, err
	}
	return result(ledger.NewEvent("paused", "paused", strconv.FormatBool(msg.Paused))), nil
}

func (h pauseHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*PauseMsg, error) {
	var msg PauseMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, h.requireRole(ctx, db, GovernanceRole)
}

type rescueHandler struct{ deps }

func (h rescueHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h rescueHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Rescue(db, msg.Amount.Ticker, msg.Destination, msg.Amount.Amount); err != nil {
		return nil, err
	}
	return result(ledger.NewEvent("rescued",
		"destination", msg.Destination.String(),
		"amount", msg.Amount.String())), nil
}

func (h rescueHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*RescueMsg, error) {
	var msg RescueMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, h.requireRole(ctx, db, SupportRole)
}
