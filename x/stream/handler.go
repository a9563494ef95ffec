package stream

import (
	"strconv"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&CreateMsg{}, &createHandler{auth: auth, ctrl: ctrl})
}

type createHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, m)
	return err
}

func (h *createHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Create(db, msg.Source, msg.Recipient, *msg.Deposit, msg.Rate, msg.StartHeight)
	if err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{
		Data: orm.EncodeSequence(id),
		Events: []ledger.Event{
			ledger.NewEvent("stream-created",
				"target", msg.Source.String(),
				"id", strconv.FormatUint(id, 10),
				"recipient", msg.Recipient.String(),
				"deposit", msg.Deposit.String()),
		},
	}, nil
}

func (h *createHandler) validate(ctx ledger.Context, m ledger.Msg) (*CreateMsg, error) {
	var msg CreateMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
